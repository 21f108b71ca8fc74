package preflight

import (
	"fmt"
	"strings"

	"zebranoise/internal/config"
	"zebranoise/internal/failure"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the configured output directory. The directory must already
// exist; callers create it first.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	dir := cfg.Output.Dir
	results := []Result{CheckDirectoryAccess("Output directory", dir)}
	if !results[0].Passed {
		return results
	}
	if cfg.Output.MinFreeMiB > 0 {
		results = append(results, CheckFreeSpace("Free space", dir, cfg.Output.MinFreeMiB))
	}
	return results
}

// Err folds failed results into a single configuration error.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return failure.Wrap(failure.ErrConfiguration, "preflight", "", strings.Join(failed, "; "), nil)
}
