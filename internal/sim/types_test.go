package sim

import (
	"errors"
	"testing"
)

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		in   string
		want EventKind
	}{
		{"pointer", PointerMove},
		{"mousemove", PointerMove},
		{"resize", Resize},
		{"burst", Burst},
		{"click", Burst},
	}

	for _, tt := range tests {
		got, err := ParseEventKind(tt.in)
		if err != nil {
			t.Errorf("ParseEventKind(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEventKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseEventKind("konami"); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestResultSeries(t *testing.T) {
	r := &Result{
		Columns: []string{"links", "energy"},
		Samples: []Sample{
			{Frame: 1, Values: []float64{3, 0.5}},
			{Frame: 2, Values: []float64{4, 0.6}},
		},
	}

	got := r.Series("energy")
	if len(got) != 2 || got[0] != 0.5 || got[1] != 0.6 {
		t.Errorf("Series(energy) = %v", got)
	}
	if r.Series("missing") != nil {
		t.Error("expected nil for unknown column")
	}
}

func TestSimError(t *testing.T) {
	err := &SimError{Frame: 12, Wrapped: ErrInvalidConfig}
	if err.Error() != "frame 12: sim: invalid run configuration" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("SimError should unwrap to its cause")
	}
}
