package pipeline

import "errors"

// Error kinds of the counting pipeline. Failures are wrapped with exactly
// one kind plus the underlying cause, so callers can branch with errors.Is
// and still read the full chain.
var (
	// ErrInput marks a missing or malformed raster/ROI input. Fatal for
	// the affected image only; a batch must keep going.
	ErrInput = errors.New("input error")

	// ErrParameter marks an invalid tunable, reported before any
	// processing begins.
	ErrParameter = errors.New("parameter error")

	// ErrComputation marks a failure inside the pipeline math, such as a
	// zero-area region reaching centroid computation.
	ErrComputation = errors.New("computation error")
)

// Kind names the taxonomy bucket of an error for reporting.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInput):
		return "input"
	case errors.Is(err, ErrParameter):
		return "parameter"
	case errors.Is(err, ErrComputation):
		return "computation"
	default:
		return "unknown"
	}
}
