package stream

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/neuralgrid/internal/sim"
)

var ErrBadMessage = errors.New("stream: bad client message")

// maxSurface bounds client resize requests.
const maxSurface = 16384

// ClientMessage is what browsers send: {"type":"pointer","x":1,"y":2}.
// For resize, x and y carry the new width and height.
type ClientMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (m ClientMessage) Event() (sim.Event, error) {
	kind, err := sim.ParseEventKind(m.Type)
	if err != nil {
		return sim.Event{}, fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	if math.IsNaN(m.X) || math.IsNaN(m.Y) || math.IsInf(m.X, 0) || math.IsInf(m.Y, 0) {
		return sim.Event{}, fmt.Errorf("%w: non-finite coordinates", ErrBadMessage)
	}
	if kind == sim.Resize && (m.X <= 0 || m.Y <= 0 || m.X > maxSurface || m.Y > maxSurface) {
		return sim.Event{}, fmt.Errorf("%w: resize to %vx%v", ErrBadMessage, m.X, m.Y)
	}
	return sim.Event{Kind: kind, X: m.X, Y: m.Y}, nil
}
