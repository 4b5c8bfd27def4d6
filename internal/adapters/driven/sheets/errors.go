package sheets

import (
	"errors"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions,
// usually a spreadsheet not shared with the service account.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsNotFound returns true if the error indicates a missing spreadsheet or range.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// Hint returns a short suggestion for resolving err, or "" if none applies.
func Hint(err error) string {
	switch {
	case IsUnauthorized(err):
		return "check the service-account key configured as google.credentials_file"
	case IsForbidden(err):
		return "share the spreadsheet with the service account's email address"
	case IsNotFound(err):
		return "check the spreadsheet ID and sheet title"
	case IsRateLimited(err):
		return "lower google.requests_per_second or try again later"
	default:
		return ""
	}
}

func hasStatus(err error, code int) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}
	return false
}

// retryAfter extracts the Retry-After header in seconds, or 0.
func retryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil {
		return 0
	}
	return secs
}
