package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for model and engine operations.
var (
	// ErrInvalidConfig indicates a parameter combination a model cannot evaluate.
	ErrInvalidConfig = errors.New("scisim: invalid configuration")

	// ErrShortCircuit indicates a resistive network whose total resistance is not positive.
	ErrShortCircuit = errors.New("scisim: short circuit (total resistance <= 0)")

	// ErrImageAtInfinity indicates an object placed at the focal point.
	ErrImageAtInfinity = errors.New("scisim: image at infinity (object at focal point)")

	// ErrNonFinite indicates a model produced NaN or Inf components.
	ErrNonFinite = errors.New("scisim: non-finite result (NaN or Inf detected)")

	// ErrUnknownSimulation indicates a lookup for a simulation id that is not registered.
	ErrUnknownSimulation = errors.New("scisim: unknown simulation")

	// ErrUnknownParam indicates a parameter name missing from the schema.
	ErrUnknownParam = errors.New("scisim: unknown parameter")

	// ErrParamKind indicates a setter of the wrong kind for the parameter.
	ErrParamKind = errors.New("scisim: parameter kind mismatch")

	// ErrInvalidOption indicates an enum value outside the parameter's options.
	ErrInvalidOption = errors.New("scisim: invalid option")
)

// InvalidResultError wraps a model failure with the frame it happened on.
type InvalidResultError struct {
	Simulation string
	Frame      int
	Wrapped    error
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("%s frame %d: %v", e.Simulation, e.Frame, e.Wrapped)
}

func (e *InvalidResultError) Unwrap() error {
	return e.Wrapped
}
