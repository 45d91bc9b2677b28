// Package logging assembles the slog loggers used by vidio.
//
// Diagnostics always go to stderr so that command output on stdout stays
// pipeable. The console format is a compact single-line layout; the json
// format uses short keys (ts, level, msg) for log shippers. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
