// Package sheets implements driven.SpreadsheetClient on top of the
// Google Sheets v4 API.
//
// Authentication uses a service-account JSON key. The spreadsheet must be
// shared with the service account's email address.
//
// Sheets v4 has no server-side row filter, so structured queries are
// evaluated locally with sheetquery against unformatted cell values while
// rows carry the formatted values users see in the browser.
package sheets
