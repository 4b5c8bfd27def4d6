package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from errors raised by the spreadsheet service,
// which are returned to callers untouched.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates an unknown export or output format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Spreadsheet Errors.

	// ErrNoSheets indicates the spreadsheet has no worksheets.
	ErrNoSheets = errors.New("spreadsheet has no sheets")

	// ErrSheetNotFound indicates a worksheet with the requested title does not exist.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrRowDetached indicates a row has no save capability attached.
	// Rows built by hand rather than fetched from a sheet are detached.
	ErrRowDetached = errors.New("row is not attached to a sheet")

	// ErrSpreadsheetIDRequired indicates no spreadsheet ID was given or configured.
	ErrSpreadsheetIDRequired = errors.New("spreadsheet ID required")

	// Authentication Errors.

	// ErrAuthRequired indicates no service-account credentials are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credentials file could not be used.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
