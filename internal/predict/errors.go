package predict

import "strings"

// ValidationError carries every constraint violated by a request. It is
// the only error class that maps to HTTP 400; everything else a pipeline
// returns is a server-side failure.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + strings.Join(e.Violations, "; ")
}
