package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMissingBinary is returned by Require when a required binary is unavailable.
var ErrMissingBinary = errors.New("required binary not available")

// Requirement defines an external dependency dedup relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Exiftool describes the exiftool binary used by the timestamp patcher.
func Exiftool(command string) Requirement {
	return Requirement{
		Name:        "ExifTool",
		Command:     command,
		Description: "Reads and writes EXIF tags for the timestamps command",
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Require checks the requirements and returns an error naming every
// non-optional binary that is unavailable.
func Require(requirements ...Requirement) error {
	var errs []error
	for _, status := range CheckBinaries(requirements) {
		if status.Available || status.Optional {
			continue
		}
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrMissingBinary, status.Name, status.Detail))
	}
	return errors.Join(errs...)
}
