// Package config loads, normalizes, and validates the showrunner TOML
// configuration. Defaults live in defaults.go; path fields are expanded to
// absolute paths during Load so downstream packages never see "~".
package config
