// Package jar reads the compiler's class jar and writes the generated-classes
// jar. Jars are plain zip archives with /-separated entry names.
package jar

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// classSuffix marks the compiled-output entries subject to classification.
const classSuffix = ".class"

// ExtractClasses streams the entries of the jar at jarPath exactly once and
// copies every included class file into destDir, preserving its internal
// path. include is called with the entry name minus the .class suffix.
// Entries not ending in .class (directory markers, resources, META-INF) are
// skipped unconditionally. Returns the number of files written.
//
// Duplicate entry names overwrite-last, matching upstream jar tooling. An
// entry whose name would escape destDir marks the archive malformed.
func ExtractClasses(jarPath string, include func(className string) bool, destDir string) (int, error) {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open class jar %s: %w", jarPath, err)
	}
	defer r.Close()

	written := 0
	for _, entry := range r.File {
		name := entry.Name
		if !strings.HasSuffix(name, classSuffix) {
			continue
		}
		if !include(strings.TrimSuffix(name, classSuffix)) {
			continue
		}
		dest, err := join(destDir, name)
		if err != nil {
			return written, fmt.Errorf("malformed class jar %s: %w", jarPath, err)
		}
		if err := copyEntry(entry, dest); err != nil {
			return written, fmt.Errorf("failed to extract %s: %w", name, err)
		}
		written++
	}
	return written, nil
}

// join resolves an entry name under root, rejecting absolute names and names
// that traverse out of root.
func join(root, name string) (string, error) {
	cleaned := path.Clean(name)
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("entry name %q escapes the archive root", name)
	}
	return filepath.Join(root, filepath.FromSlash(cleaned)), nil
}

func copyEntry(entry *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
