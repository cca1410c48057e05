package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors (startup-fatal)
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors (fatal for the current call, retryable on the next)
	ErrAuthFailed    = fmt.Errorf("authentication failed")
	ErrRefreshFailed = fmt.Errorf("token refresh failed")
	ErrTimeout       = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// ErrTrackNotFound marks a resolution that produced no candidate above
	// the acceptance threshold. A defined outcome, not a failure: callers
	// map it to the Unresolved terminal state.
	ErrTrackNotFound = fmt.Errorf("track not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
