// Package output derives destination paths and persists the generated vCard
// blob.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists indicates the destination file already exists and force was not set.
var ErrExists = errors.New("output: file already exists")

// Writer persists conversion output to disk.
type Writer struct {
	dir   string // optional destination directory for derived paths
	force bool   // overwrite an existing destination
}

// NewWriter creates a Writer. dir, when non-empty, redirects derived paths
// into that directory. force allows overwriting existing files.
func NewWriter(dir string, force bool) *Writer {
	return &Writer{dir: dir, force: force}
}

// Derive picks the destination path. An explicit path wins unchanged.
// Otherwise the input path's extension is swapped for .vcf, and the file is
// placed in the configured directory when one is set.
func (w *Writer) Derive(input, explicit string) string {
	if explicit != "" {
		return explicit
	}
	derived := strings.TrimSuffix(input, filepath.Ext(input)) + ".vcf"
	if w.dir != "" {
		derived = filepath.Join(w.dir, filepath.Base(derived))
	}
	return derived
}

// Write persists data to path, creating parent directories as needed.
// An existing destination is refused unless the Writer was created with force.
func (w *Writer) Write(path string, data []byte) error {
	if !w.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("output: creating %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("output: writing %s: %w", path, err)
	}
	return nil
}
