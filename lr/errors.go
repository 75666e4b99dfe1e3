package lr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lr package.
// Use errors.Is to check: errors.Is(err, lr.ErrInvalidParameter)
var (
	// ErrInvalidParameter is returned by constructors when a parameter is outside its domain.
	ErrInvalidParameter = errors.New("lr: invalid parameter")
	// ErrInvalidArgument is returned by Step when the call itself is malformed,
	// e.g. a missing metric for ReduceLROnPlateau.
	ErrInvalidArgument = errors.New("lr: invalid argument")
	// ErrOutOfRange is returned by a strict OneCycleLR stepped past total_steps.
	ErrOutOfRange = errors.New("lr: step out of range")
)

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func outOfRange(step, total int) error {
	return fmt.Errorf("%w: step %d exceeds total_steps %d", ErrOutOfRange, step, total)
}
