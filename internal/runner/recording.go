package runner

import (
	"context"
	"os"
	"sync"
)

// Call is one recorded invocation.
type Call struct {
	Binary string
	Args   []string
}

// Result is a canned response for one call.
type Result struct {
	Output Output
	Err    error
}

// RecordingExecutor records every call instead of starting processes.
// Results are returned in order; once exhausted, calls succeed. With
// WriteOutput set, a successful call ending in "-y <path>" creates path so
// the runner has something to publish.
type RecordingExecutor struct {
	mu          sync.Mutex
	Calls       []Call
	Results     []Result
	WriteOutput bool
}

func (r *RecordingExecutor) Run(_ context.Context, binary string, args []string) (Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, Call{Binary: binary, Args: append([]string(nil), args...)})
	var result Result
	if len(r.Results) > 0 {
		result = r.Results[0]
		r.Results = r.Results[1:]
	}
	if result.Err == nil && r.WriteOutput && len(args) > 1 && args[len(args)-2] == "-y" {
		if err := os.WriteFile(args[len(args)-1], []byte("recorded output"), 0o644); err != nil {
			return Output{}, err
		}
	}
	return result.Output, result.Err
}

// CallCount returns the number of recorded calls.
func (r *RecordingExecutor) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Calls)
}
