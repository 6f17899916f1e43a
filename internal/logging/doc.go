// Package logging wires log/slog with the console and JSON handlers the
// showrunner CLI uses, plus attribute helpers and the standardized field
// names shared across pipeline stages.
package logging
