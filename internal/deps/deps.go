package deps

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"vidio/internal/failures"
)

// Requirement names an external binary and the command configured for it.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the lookup result for one Requirement. Path is the resolved
// executable when Available.
type Status struct {
	Requirement
	Path      string
	Available bool
	Detail    string
}

// CheckBinaries resolves every requirement through PATH (or as a path when
// the command contains a separator).
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		results = append(results, lookup(req))
	}
	return results
}

func lookup(req Requirement) Status {
	status := Status{Requirement: req}
	if req.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(req.Command)
	switch {
	case err == nil:
		status.Path = path
		status.Available = true
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		status.Detail = fmt.Sprintf("binary %q not found", req.Command)
	default:
		status.Detail = fmt.Sprintf("binary %q is not usable: %v", req.Command, unwrapExecError(err))
	}
	return status
}

func unwrapExecError(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) && execErr.Err != nil {
		return execErr.Err
	}
	return err
}

// RequireAll returns ErrToolNotFound for the first missing required binary.
func RequireAll(statuses []Status) error {
	for _, status := range statuses {
		if status.Available || status.Optional {
			continue
		}
		message := status.Detail
		if status.Description != "" {
			message += " (" + status.Description + ")"
		}
		return failures.Wrap(failures.ErrToolNotFound, "", status.Name, message+"; install it or set its path in the config file", nil)
	}
	return nil
}
