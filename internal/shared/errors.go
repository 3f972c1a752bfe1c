package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrUnauthorized     = fmt.Errorf("unauthorized")
	ErrSessionMissing   = fmt.Errorf("no stored session")

	// API outcomes
	ErrTransport       = fmt.Errorf("transport error")
	ErrAPIRequest      = fmt.Errorf("API request failed")
	ErrDuplicateReview = fmt.Errorf("review already exists")
	ErrNotFound        = fmt.Errorf("resource not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
