package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/neuralgrid/internal/field"
)

// Simulator owns one field and its burst overlay. It is the only writer of
// both; callers feed input through Apply or the RunLive event channel.
type Simulator struct {
	field     *field.Field
	bursts    *field.Bursts
	rng       *rand.Rand
	frame     int
	metrics   []Metric
	observers []Observer
}

func New(f *field.Field, rng *rand.Rand) *Simulator {
	return &Simulator{
		field:     f,
		bursts:    field.NewBursts(),
		rng:       rng,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Field() *field.Field   { return s.field }
func (s *Simulator) Bursts() *field.Bursts { return s.bursts }
func (s *Simulator) Frame() int            { return s.frame }

// Apply routes one input event to the field.
func (s *Simulator) Apply(e Event) {
	switch e.Kind {
	case PointerMove:
		s.field.PointerMove(e.X, e.Y)
	case Resize:
		s.field.Resize(e.X, e.Y)
	case Burst:
		s.bursts.Spawn(e.X, e.Y, s.rng)
	}
}

// Step advances the field and bursts by one frame and notifies metrics and
// observers.
func (s *Simulator) Step() {
	s.field.Advance()
	s.bursts.Advance()
	s.frame++

	for _, m := range s.metrics {
		m.Observe(s.field)
	}
	for _, o := range s.observers {
		o.OnFrame(s.frame, s.field, s.bursts)
	}
}

// Render draws the field and then the bursts on top.
func (s *Simulator) Render(surf field.Surface) {
	s.field.Render(surf)
	s.bursts.Render(surf)
}

// Run steps the simulation cfg.Frames times without pacing. On cancellation
// it returns the partial result and a *SimError wrapping ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Columns: make([]string, len(s.metrics)),
		Samples: make([]Sample, 0, cfg.Frames/every+1),
		Metrics: make(map[string]float64),
	}
	for i, m := range s.metrics {
		m.Reset()
		result.Columns[i] = m.Name()
	}

	var err error
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			err = &SimError{Frame: s.frame, Wrapped: ctx.Err()}
		default:
		}
		if err != nil {
			break
		}

		for _, e := range cfg.Script[i] {
			s.Apply(e)
		}
		s.Step()
		result.Frames++

		if result.Frames%every == 0 {
			result.Samples = append(result.Samples, s.sample())
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = s.field.Clone()
	return result, err
}

func (s *Simulator) sample() Sample {
	vals := make([]float64, len(s.metrics))
	for i, m := range s.metrics {
		vals[i] = m.Value()
	}
	return Sample{Frame: s.frame, Values: vals}
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	for frame := range cfg.Script {
		if frame < 0 || frame >= cfg.Frames {
			return fmt.Errorf("%w: scripted frame %d outside [0, %d)", ErrInvalidConfig, frame, cfg.Frames)
		}
	}
	return nil
}

// RunLive paces Step at fps until ctx is done. Events are applied on the
// same goroutine as Step, so the field never sees concurrent writers.
// onFrame runs after every step and must not retain the field.
func (s *Simulator) RunLive(ctx context.Context, fps int, events <-chan Event, onFrame func(*Simulator)) error {
	if fps <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, fps)
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.Apply(e)
		case <-ticker.C:
			s.Step()
			if onFrame != nil {
				onFrame(s)
			}
		}
	}
}
