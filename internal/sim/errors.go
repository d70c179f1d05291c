package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a run configuration that cannot be executed.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrUnknownEvent indicates an event name with no matching kind.
	ErrUnknownEvent = errors.New("sim: unknown event")
)

// SimError ties an error to the frame it happened on.
type SimError struct {
	Frame   int
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
