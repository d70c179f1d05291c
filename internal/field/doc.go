// Package field implements the particle network behind the grid background.
//
// A [Field] owns a fixed number of particles that drift across a
// rectangular surface. Each frame the caller advances the field, renders
// it, and forwards pointer and resize input:
//
//   - [New]: seed particles for a surface (count = min(100, width/15))
//   - [Field.Advance]: move particles one frame, reflecting at the edges
//   - [Field.Links]: proximity pairs closer than the link distance
//   - [Field.Render]: draw dots and links onto a [Surface]
//   - [Field.PointerMove]: push nearby particles away from the pointer
//   - [Field.Resize]: change the surface bounds only
//
// # Example
//
//	f := field.New(1280, 720, rand.New(rand.NewSource(1)))
//	for {
//		f.Advance()
//		f.Render(surface)
//	}
//
// # Thread Safety
//
// A Field is NOT safe for concurrent use. Every mutation must happen on
// the goroutine that drives the frame loop; see package sim.
package field
