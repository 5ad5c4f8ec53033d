package booking

import "fmt"

// ValidationError names the first field that blocks submission. It is
// recoverable locally: no submission request is attempted while one exists.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking: invalid %s: %s", e.Field, e.Reason)
}
