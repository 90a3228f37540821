package commands

import "errors"

// exitError pairs an error with the process exit code it should produce,
// per the error taxonomy's NotAdministrator(1)/InvalidArguments(2)/
// NoEligibleVolume(3) bindings.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Errors not wrapped in exitError come from cobra's own argument and
	// flag parsing.
	return 2
}
