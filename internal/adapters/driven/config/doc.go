// Package config holds the value conversions shared by the config stores.
//
// Values reach a store from three places: Go values set through the API,
// TOML documents (integers decode as int64) and environment variables
// (always strings). The helpers here give all three the same typed view.
package config
