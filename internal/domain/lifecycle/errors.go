package lifecycle

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not permitted in the
	// current state
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrInvalidState is returned when a state is not a defined remittance state
	ErrInvalidState = errors.New("invalid lifecycle state")

	// ErrGuardFailed is returned when every transition for a trigger is
	// blocked by its guard condition
	ErrGuardFailed = errors.New("lifecycle guard condition failed")
)
