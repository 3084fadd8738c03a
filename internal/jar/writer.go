package jar

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// normalizedModTime is stamped on every output entry so identical inputs
// produce byte-identical jars. Zip cannot represent pre-1980 times, so the
// conventional normalized-jar epoch is used.
var normalizedModTime = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteDeterministic packages the tree rooted at rootDir into a jar at
// outPath: entries sorted lexicographically by their /-separated relative
// paths, fixed timestamps, deflate compression, no directory entries. The jar
// is written to a temporary sibling and renamed into place on success; on any
// error outPath is left untouched, so downstream steps never see an
// incomplete archive.
func WriteDeterministic(outPath, rootDir string) (err error) {
	var names []string
	walkErr := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(rootDir, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("failed to walk staged tree %s: %w", rootDir, walkErr)
	}
	sort.Strings(names)

	tmp, err := os.CreateTemp(filepath.Dir(outPath), filepath.Base(outPath)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary output jar: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)
	for _, name := range names {
		if err = writeEntry(zw, name, filepath.Join(rootDir, filepath.FromSlash(name))); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", name, err)
		}
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize output jar: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output jar: %w", err)
	}
	if err = os.Rename(tmp.Name(), outPath); err != nil {
		return fmt.Errorf("failed to publish output jar %s: %w", outPath, err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name, srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: normalizedModTime,
	})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
