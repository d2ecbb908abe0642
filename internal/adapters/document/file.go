package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/polarreport/internal/domain/model"
)

const outputMode = 0o644

// WriteFile writes src to path atomically. The content goes to a temporary
// file in the destination directory which is renamed over path once it is
// complete and closed. On any failure the temporary file is removed and path
// is left untouched.
func WriteFile(path string, src io.WriterTo) (written int64, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("%w: create temp file for %s: %w", model.ErrIO, path, err)
	}
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmp.Name())
	}()

	if written, err = src.WriteTo(tmp); err != nil {
		return written, fmt.Errorf("%w: write %s: %w", model.ErrIO, path, err)
	}
	if err = tmp.Chmod(outputMode); err != nil {
		return written, fmt.Errorf("%w: chmod %s: %w", model.ErrIO, tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return written, fmt.Errorf("%w: sync %s: %w", model.ErrIO, tmp.Name(), err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return written, fmt.Errorf("%w: close %s: %w", model.ErrIO, tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return written, fmt.Errorf("%w: rename into %s: %w", model.ErrIO, path, err)
	}
	return written, nil
}
