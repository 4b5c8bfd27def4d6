// Package file provides the TOML-backed configuration store.
//
// Settings live in ~/.sheetrows/config.toml. Environment variables named
// SHEETROWS_<KEY> (dots become underscores, e.g. SHEETROWS_GOOGLE_SPREADSHEET_ID)
// override values from the file. Variables may also come from .env files read
// with godotenv; real environment variables win over .env entries.
//
// Long-running commands call Watch to pick up edits to the config file or
// the .env files without restarting.
package file
