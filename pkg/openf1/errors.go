package openf1

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable is the sentinel matched by every roster acquisition
// failure. Callers classify with errors.Is and decide whether to abort.
var ErrSourceUnavailable = errors.New("driver source unavailable")

// SourceError is a structured error for failed calls against the drivers API.
type SourceError struct {
	Op         string // Operation that failed (e.g., "list drivers")
	StatusCode int    // HTTP status code if a response was received
	Err        error  // Underlying error
}

func (e *SourceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is so any SourceError matches ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
