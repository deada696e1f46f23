// Package testutil provides file-creation helpers shared across tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TempDir returns a fresh temporary directory cleaned up with the test.
func TempDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// CreateFile writes content to path, creating parent directories as needed.
func CreateFile(t *testing.T, path, content string) {
	t.Helper()
	createFileBytes(t, path, []byte(content), false, time.Time{})
}

// CreateFileWithModTime writes content to path and sets its mod time.
func CreateFileWithModTime(t *testing.T, path, content string, modTime time.Time) {
	t.Helper()
	createFileBytes(t, path, []byte(content), true, modTime)
}

func createFileBytes(t *testing.T, path string, content []byte, setModTime bool, modTime time.Time) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	require.NoError(t, err)

	err = os.WriteFile(path, content, 0o644)
	require.NoError(t, err)

	if !setModTime {
		return
	}

	err = os.Chtimes(path, modTime, modTime)
	require.NoError(t, err)
}
