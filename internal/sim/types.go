package sim

import (
	"fmt"

	"github.com/san-kum/neuralgrid/internal/field"
)

// EventKind identifies an input event.
type EventKind int

const (
	PointerMove EventKind = iota
	Resize
	Burst
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointer"
	case Resize:
		return "resize"
	case Burst:
		return "burst"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind maps "pointer", "resize" or "burst" to its kind.
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "pointer", "pointer_move", "mousemove":
		return PointerMove, nil
	case "resize":
		return Resize, nil
	case "burst", "click":
		return Burst, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// Event is one input routed into the frame loop. For Resize, X and Y carry
// the new width and height.
type Event struct {
	Kind EventKind
	X, Y float64
}

type Metric interface {
	Name() string
	Observe(f *field.Field)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(frame int, f *field.Field, b *field.Bursts)
}

type Config struct {
	Frames      int
	SampleEvery int
	Seed        int64
	// Script maps a frame index to the events applied before that frame.
	Script map[int][]Event
}

func DefaultConfig() Config {
	return Config{
		Frames:      600,
		SampleEvery: 10,
	}
}

// Sample holds every metric value at one frame, ordered like Result.Columns.
type Sample struct {
	Frame  int
	Values []float64
}

type Result struct {
	Columns []string
	Samples []Sample
	Metrics map[string]float64
	Frames  int
	Final   *field.Field
}

// Series returns the sampled values of one metric.
func (r *Result) Series(name string) []float64 {
	col := -1
	for i, c := range r.Columns {
		if c == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Values[col]
	}
	return out
}
