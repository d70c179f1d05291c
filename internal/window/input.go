package window

import "github.com/san-kum/neuralgrid/internal/sim"

// input turns polled window state into simulator events. It holds no
// ebiten state so the translation can be exercised without a display.
type input struct {
	lastX, lastY int
	seen         bool
	width        int
	height       int
	pendingW     int
	pendingH     int
}

// cursor reports a PointerMove when the cursor moved inside the window.
func (in *input) cursor(x, y int) (sim.Event, bool) {
	if in.seen && x == in.lastX && y == in.lastY {
		return sim.Event{}, false
	}
	in.seen = true
	in.lastX, in.lastY = x, y
	if x < 0 || y < 0 || x >= in.width || y >= in.height {
		return sim.Event{}, false
	}
	return sim.Event{Kind: sim.PointerMove, X: float64(x), Y: float64(y)}, true
}

func (in *input) click(x, y int) sim.Event {
	return sim.Event{Kind: sim.Burst, X: float64(x), Y: float64(y)}
}

// layout records the outside size. The resize is applied later from
// Update, which is the only place the field is written.
func (in *input) layout(w, h int) {
	in.pendingW, in.pendingH = w, h
}

func (in *input) resize() (sim.Event, bool) {
	if in.pendingW == 0 || in.pendingH == 0 || (in.pendingW == in.width && in.pendingH == in.height) {
		return sim.Event{}, false
	}
	in.width, in.height = in.pendingW, in.pendingH
	return sim.Event{Kind: sim.Resize, X: float64(in.width), Y: float64(in.height)}, true
}
