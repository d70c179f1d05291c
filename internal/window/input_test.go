package window

import (
	"testing"

	"github.com/san-kum/neuralgrid/internal/sim"
)

func TestCursorEmitsOnMove(t *testing.T) {
	in := input{width: 100, height: 50}

	e, ok := in.cursor(10, 20)
	if !ok || e.Kind != sim.PointerMove || e.X != 10 || e.Y != 20 {
		t.Fatalf("first cursor = %+v, %v", e, ok)
	}
	if _, ok := in.cursor(10, 20); ok {
		t.Error("unchanged cursor emitted an event")
	}
	if _, ok := in.cursor(-5, 20); ok {
		t.Error("cursor outside the window emitted an event")
	}
	if _, ok := in.cursor(100, 20); ok {
		t.Error("cursor on the right edge emitted an event")
	}
}

func TestClickIsBurst(t *testing.T) {
	var in input
	if e := in.click(3, 4); e.Kind != sim.Burst || e.X != 3 || e.Y != 4 {
		t.Errorf("click = %+v", e)
	}
}

func TestResizeDeferredUntilUpdate(t *testing.T) {
	in := input{width: 100, height: 50}

	if _, ok := in.resize(); ok {
		t.Error("resize without layout")
	}
	in.layout(100, 50)
	if _, ok := in.resize(); ok {
		t.Error("same size reported as resize")
	}

	in.layout(300, 200)
	if in.width != 100 {
		t.Error("layout changed size before Update")
	}
	e, ok := in.resize()
	if !ok || e.Kind != sim.Resize || e.X != 300 || e.Y != 200 {
		t.Fatalf("resize = %+v, %v", e, ok)
	}
	if _, ok := in.resize(); ok {
		t.Error("resize applied twice")
	}
}
