package automation

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/neuralgrid/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a scripted sequence of inputs replayed during a headless run.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Events      []ScriptedEvent `yaml:"events"`
}

// ScriptedEvent fires at Frame. A pointer event with Duration > 1 becomes a
// drag: one pointer move per frame from (X, Y) to (ToX, ToY).
type ScriptedEvent struct {
	Frame    int     `yaml:"frame"`
	Type     string  `yaml:"type"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ToX      float64 `yaml:"to_x,omitempty"`
	ToY      float64 `yaml:"to_y,omitempty"`
	Duration int     `yaml:"duration,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

// Script expands the scenario into per-frame events for sim.Config.Script.
func (s *Scenario) Script() (map[int][]sim.Event, error) {
	script := make(map[int][]sim.Event)

	for i, step := range s.Events {
		kind, err := sim.ParseEventKind(step.Type)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		if step.Frame < 0 {
			return nil, fmt.Errorf("%w: event %d has negative frame %d", ErrInvalidScenario, i+1, step.Frame)
		}
		if kind == sim.Resize && (step.X < 0 || step.Y < 0) {
			return nil, fmt.Errorf("%w: event %d resizes to %vx%v", ErrInvalidScenario, i+1, step.X, step.Y)
		}

		if kind != sim.PointerMove || step.Duration <= 1 {
			script[step.Frame] = append(script[step.Frame], sim.Event{Kind: kind, X: step.X, Y: step.Y})
			continue
		}

		// drag
		last := float64(step.Duration - 1)
		for k := 0; k < step.Duration; k++ {
			t := float64(k) / last
			e := sim.Event{
				Kind: sim.PointerMove,
				X:    step.X + (step.ToX-step.X)*t,
				Y:    step.Y + (step.ToY-step.Y)*t,
			}
			script[step.Frame+k] = append(script[step.Frame+k], e)
		}
	}

	return script, nil
}

// LastFrame returns the highest frame index the scenario touches, or -1.
func (s *Scenario) LastFrame() int {
	last := -1
	for _, e := range s.Events {
		end := e.Frame
		if e.Duration > 1 {
			end += e.Duration - 1
		}
		if end > last {
			last = end
		}
	}
	return last
}
