// Package failures defines the error taxonomy shared by every vidio command.
//
// Errors are tagged with one of the exported sentinel markers so the CLI can
// classify them with errors.Is and pick a process exit status. Validation
// markers (time format, conflicting options, input counts, option ranges,
// existing outputs) are always raised before any subprocess starts. Tool and
// probe markers carry the tail of the external tool's error stream.
package failures
