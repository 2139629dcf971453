// Package fsutil provides file system helpers shared by the pipeline stages:
// output naming derived from the input dataset and atomic file replacement.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BaseName returns the file name of path up to its first dot, so
// "/data/reads.fastq.gz" becomes "reads".
func BaseName(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// Derived builds "<dir>/<base><suffix>.<ext>" for an output that belongs to
// the dataset at input.
func Derived(dir, input, suffix, ext string) string {
	return filepath.Join(dir, BaseName(input)+suffix+"."+ext)
}

// EnsureDir creates dir and its parents if they do not exist yet.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory path must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
