// Package staging owns the transient directory that classified class files
// are copied into before repackaging. The directory is scoped to one run:
// created fresh, removed on every exit path. A build system invokes the tool
// many times, so a leaked staging directory leaks disk.
package staging

import (
	"fmt"
	"os"
)

// Dir is a run-scoped staging directory.
type Dir struct {
	path    string
	removed bool
}

// New creates a fresh private directory under the OS temp root. runID is
// embedded in the directory name so leftover directories from a crashed run
// can be traced back to a build log.
func New(runID string) (*Dir, error) {
	path, err := os.MkdirTemp("", "genjar-"+runID+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the staging directory's absolute path.
func (d *Dir) Path() string { return d.path }

// Remove deletes the staging directory recursively. Idempotent: the second
// and later calls are no-ops.
func (d *Dir) Remove() error {
	if d.removed {
		return nil
	}
	d.removed = true
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("failed to remove staging directory %s: %w", d.path, err)
	}
	return nil
}
