// Package scanner collects regular files from a directory in discovery order.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileInfo holds metadata about a scanned file.
type FileInfo struct {
	Path    string    // Full path to the file
	Name    string    // Base filename
	Size    int64     // File size in bytes
	ModTime time.Time // Modification time
}

// ErrorFunc receives per-entry scan failures. The entry is skipped and the
// scan continues.
type ErrorFunc func(path string, err error)

// Options configures the scanner behavior.
type Options struct {
	OnError ErrorFunc
}

// Scanner collects regular files. Directories and symlinks are never
// returned as files.
type Scanner struct {
	onError ErrorFunc
}

// New creates a Scanner with the given options.
func New(opts Options) *Scanner {
	return &Scanner{onError: opts.OnError}
}

// Scan returns the regular files under root in discovery order. With
// recursive set it visits all descendants, otherwise only direct children.
// An unreadable root is a hard error; unreadable children are reported and
// skipped.
func (s *Scanner) Scan(root string, recursive bool) ([]FileInfo, error) {
	if recursive {
		return s.walk(root)
	}
	return s.listDir(root)
}

func (s *Scanner) walk(root string) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.report(path, err)
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.report(path, err)
			return nil
		}

		files = append(files, fileInfo(path, info))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (s *Scanner) listDir(root string) ([]FileInfo, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.report(filepath.Join(root, entry.Name()), err)
			continue
		}

		files = append(files, fileInfo(filepath.Join(root, entry.Name()), info))
	}

	return files, nil
}

func (s *Scanner) report(path string, err error) {
	if s.onError != nil {
		s.onError(path, err)
	}
}

func fileInfo(path string, info fs.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
