package failures

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTimeFormat  = errors.New("invalid time format")
	ErrConflictingOptions = errors.New("conflicting options")
	ErrIncompatibleInputs = errors.New("incompatible inputs")
	ErrTooManyInputs      = errors.New("too many inputs")
	ErrInvalidOption      = errors.New("invalid option")
	ErrOutputExists       = errors.New("output exists")
	ErrToolNotFound       = errors.New("tool not found")
	ErrToolFailure        = errors.New("tool failure")
	ErrProbeFailure       = errors.New("probe failure")
)

// Exit statuses reported by the CLI.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// Wrap builds an error message that names the command and offending option
// while tagging it with marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, command, option, message string, err error) error {
	detail := buildDetail(command, option, message)
	if marker == nil {
		marker = ErrToolFailure
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsValidation reports whether err was raised by option validation rather
// than by an external tool.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidTimeFormat),
		errors.Is(err, ErrConflictingOptions),
		errors.Is(err, ErrIncompatibleInputs),
		errors.Is(err, ErrTooManyInputs),
		errors.Is(err, ErrInvalidOption),
		errors.Is(err, ErrOutputExists):
		return true
	default:
		return false
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsValidation(err):
		return ExitValidation
	default:
		return ExitFailure
	}
}

func buildDetail(command, option, message string) string {
	parts := make([]string, 0, 3)
	if command = strings.TrimSpace(command); command != "" {
		parts = append(parts, command)
	}
	if option = strings.TrimSpace(option); option != "" {
		parts = append(parts, option)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "unspecified failure"
	}
	return strings.Join(parts, ": ")
}
