package testhelpers

import (
	"path/filepath"
	"runtime"
)

// RepoRoot returns the absolute path to the repository root.
func RepoRoot() string {
	// this file lives at <repo>/test/helpers.go
	_, file, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(file)
	return filepath.Dir(testDir)
}

// FixturePath joins under test/integration/testdata/...
func FixturePath(parts ...string) string {
	base := []string{RepoRoot(), "test", "integration", "testdata"}
	return filepath.Join(append(base, parts...)...)
}

// KeyboardsFixture returns the fixture keyboards root.
func KeyboardsFixture() string {
	return FixturePath("keyboards")
}
