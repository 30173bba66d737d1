package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempKeyboards creates a temporary keyboards root for testing
func TempKeyboards(t *testing.T) string {
	root := filepath.Join(t.TempDir(), "keyboards")
	require.NoError(t, os.MkdirAll(root, 0755))
	return root
}

// WriteFile writes content to a file in the test directory
func WriteFile(t *testing.T, dir, path, content string) {
	fullPath := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}

// ReadFile reads content from a test file
func ReadFile(t *testing.T, dir, path string) string {
	fullPath := filepath.Join(dir, path)
	content, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	return string(content)
}

// WriteInfoJSON writes an info.json for the named keyboard under root
func WriteInfoJSON(t *testing.T, root, keyboard, content string) {
	WriteFile(t, root, filepath.Join(filepath.FromSlash(keyboard), "info.json"), content)
}

// FileExists checks if a file exists
func FileExists(t *testing.T, path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DirExists checks if a directory exists
func DirExists(t *testing.T, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
