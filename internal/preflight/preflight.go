package preflight

import (
	"dedup/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Source directory", cfg.Paths.SourceDir)}
	if cfg.Paths.MoveDir != "" {
		results = append(results, CheckDirectoryAccess("Move directory", cfg.Paths.MoveDir))
	}
	results = append(results, CheckStateDir(cfg.Paths.StateDir))
	results = append(results, CheckExiftool(cfg.ExiftoolBinary()))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
