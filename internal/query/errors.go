package query

import "fmt"

// ValidationError reports a parameter value the engine does not recognize.
// Callers reject the request; nothing is coerced to "all".
type ValidationError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}

func invalid(param, value, reason string) error {
	return &ValidationError{Param: param, Value: value, Reason: reason}
}
