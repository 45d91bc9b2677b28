package failures

import (
	"fmt"
	"strings"
)

// DefaultTailLines bounds how much of a tool's error stream is surfaced.
const DefaultTailLines = 20

// ToolFailure describes a non-zero exit (or failed start) of an external tool.
// ExitCode is -1 when the process never reported a status.
type ToolFailure struct {
	Tool       string
	ExitCode   int
	StderrTail string
	Err        error
}

func (f *ToolFailure) Error() string {
	var b strings.Builder
	b.WriteString(f.Tool)
	if f.ExitCode > 0 {
		fmt.Fprintf(&b, " exited with status %d", f.ExitCode)
	} else {
		b.WriteString(" failed")
	}
	if f.Err != nil {
		fmt.Fprintf(&b, ": %v", f.Err)
	}
	if tail := strings.TrimSpace(f.StderrTail); tail != "" {
		b.WriteString(":\n")
		b.WriteString(tail)
	}
	return b.String()
}

// Unwrap exposes the ErrToolFailure marker plus the underlying cause.
func (f *ToolFailure) Unwrap() []error {
	if f.Err != nil {
		return []error{ErrToolFailure, f.Err}
	}
	return []error{ErrToolFailure}
}

// Tail returns the last n non-empty lines of text.
func Tail(text string, n int) string {
	if n <= 0 {
		n = DefaultTailLines
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		line := strings.TrimRight(lines[i], " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.Join(kept, "\n")
}
