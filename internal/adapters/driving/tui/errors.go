package tui

import "errors"

// ErrMissingSheetService is returned when the sheet service is not provided.
var ErrMissingSheetService = errors.New("tui: sheet service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
