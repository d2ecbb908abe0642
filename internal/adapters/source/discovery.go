// Package source finds and opens polar files on the local file system.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okian/polarreport/internal/domain/model"
)

// DefaultExtension is the extension of polar files when none is configured.
const DefaultExtension = ".txt"

// File describes one discovered polar file.
type File struct {
	Path string
	Name string
	Size int64
}

// Discover lists the regular files in dir whose extension matches ext
// (case-insensitive, with or without the leading dot). Subdirectories are not
// searched. A matching entry that cannot be stat'ed, such as a dangling
// symlink, fails the whole listing. The result is sorted by file name.
func Discover(dir, ext string) ([]File, error) {
	ext = normalizeExt(ext)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read directory %s: %w", model.ErrIO, dir, err)
	}

	var files []File
	for _, entry := range entries {
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}

		path := filepath.Join(dir, name)
		// Stat follows symlinks so linked polar files are picked up too.
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: stat %s: %w", model.ErrIO, path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, File{
			Path: path,
			Name: name,
			Size: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Open opens a discovered file for reading.
func Open(f File) (io.ReadCloser, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", model.ErrIO, f.Path, err)
	}
	return r, nil
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
