// Package export renders a field to static formats.
//
// [SVGSurface] emits vector markup, [RasterSurface] rasterizes onto an
// image.RGBA that [WritePNG] and [GIFRecorder] encode. Both implement
// field.Surface, so they draw exactly what the live views draw.
package export
