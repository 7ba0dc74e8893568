package rasdae

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSpecies indicates a pool member with no ODE. The model is
	// inconsistent; this is never a recoverable condition.
	ErrUnknownSpecies = errors.New("rasdae: pool species has no ODE")

	// ErrUnknownFormat indicates an unsupported report format.
	ErrUnknownFormat = errors.New("rasdae: unknown output format")

	// ErrIndexOutOfRange indicates a DAE index outside 1..Count.
	ErrIndexOutOfRange = errors.New("rasdae: DAE system index out of range")
)

// ConsistencyError names the pool and species that broke the model.
type ConsistencyError struct {
	Pool    string
	Species string
	Wrapped error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s in pool %s", e.Wrapped.Error(), e.Species, e.Pool)
}

func (e *ConsistencyError) Unwrap() error { return e.Wrapped }
