package lpcvoc

import (
	"errors"
	"fmt"
)

// Error taxonomy.  Configuration and stream-structure problems are fatal and
// surfaced to the caller; per-frame degeneracies (silent or singular frames,
// diverging synthesis) are recovered locally and only logged.
var (
	// ErrInvalidConfig reports a bad order, frame size or overlap.  It is
	// returned before any processing starts.
	ErrInvalidConfig = errors.New("invalid codec configuration")

	// ErrMalformedStream reports a corrupt, truncated or inconsistent
	// encoded stream.  No partial decode is attempted.
	ErrMalformedStream = errors.New("malformed encoded stream")
)

func invalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedStream, fmt.Sprintf(format, args...))
}
