// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to
// driven ports (adapters).
//
// The sheet service is a forwarding facade: it performs one call into the
// spreadsheet client per operation and returns the client's errors as-is.
package services
