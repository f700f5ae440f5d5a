package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"dedup/internal/deps"
)

// CheckDirectoryAccess verifies that path is a directory the current user
// can read, write, and traverse.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStateDir accepts a state directory that does not exist yet as long as
// its nearest existing ancestor is writable, since it is created on first run.
func CheckStateDir(path string) Result {
	const name = "State directory"
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(dir); err == nil {
			parent := CheckDirectoryAccess(name, dir)
			if !parent.Passed {
				return parent
			}
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
		}
		if next := filepath.Dir(dir); next == dir {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing parent)", path)}
		}
	}
}

// CheckExiftool reports whether the exiftool binary is on PATH. A missing
// exiftool only affects the timestamps command, so the detail says so.
func CheckExiftool(command string) Result {
	status := deps.CheckBinaries([]deps.Requirement{deps.Exiftool(command)})[0]
	if !status.Available {
		return Result{Name: status.Name, Detail: status.Detail + " (needed only by the timestamps command)"}
	}
	return Result{Name: status.Name, Passed: true, Detail: status.Command}
}
