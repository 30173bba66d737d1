package info

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
)

// DefinitionFile is the name of a keyboard definition file.
const DefinitionFile = "info.json"

// keymapsDir is the directory that holds per-keymap overlays under a
// keyboard's leaf directory.
const keymapsDir = "keymaps"

// Loader resolves keyboard definitions below a keyboards root directory.
type Loader struct {
	root string
}

// NewLoader creates a loader for the given keyboards root.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Root returns the keyboards root the loader resolves against.
func (l *Loader) Root() string {
	return l.root
}

// Resolve merges every definition file on the keyboard's directory chain,
// applies the keymap overlay when one is present, and projects the result
// into a Record. The chain runs from the keyboards root down to the leaf, so
// deeper levels override shallower ones.
func (l *Loader) Resolve(keyboard, keymap string) (*Record, error) {
	dir, err := l.keyboardDir(keyboard)
	if err != nil {
		return nil, err
	}

	tree := map[string]any{}
	found := false
	level := l.root
	for _, seg := range strings.Split(filepath.ToSlash(keyboard), "/") {
		level = filepath.Join(level, seg)
		path := filepath.Join(level, DefinitionFile)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		overlay, err := decodeDefinition(path)
		if err != nil {
			return nil, err
		}
		tree = mergeTrees(tree, overlay)
		found = true
	}
	if !found {
		return nil, fmt.Errorf("%w: %q has no %s", ErrUnknownKeyboard, keyboard, DefinitionFile)
	}

	if keymap != "" {
		kmDir := filepath.Join(dir, keymapsDir, keymap)
		if fi, err := os.Stat(kmDir); err != nil || !fi.IsDir() {
			return nil, fmt.Errorf("%w: %q has no keymap %q", ErrUnknownKeymap, keyboard, keymap)
		}
		path := filepath.Join(kmDir, DefinitionFile)
		if _, err := os.Stat(path); err == nil {
			overlay, err := decodeDefinition(path)
			if err != nil {
				return nil, err
			}
			tree = mergeTrees(tree, overlay)
		}
	}

	return FromMap(tree)
}

// IsKeyboard reports whether name resolves to a keyboard definition: its
// directory exists and at least one definition file participates in the
// merge chain.
func (l *Loader) IsKeyboard(name string) bool {
	if _, err := l.keyboardDir(name); err != nil {
		return false
	}
	level := l.root
	for _, seg := range strings.Split(filepath.ToSlash(name), "/") {
		level = filepath.Join(level, seg)
		if _, err := os.Stat(filepath.Join(level, DefinitionFile)); err == nil {
			return true
		}
	}
	return false
}

// List returns the sorted, slash-separated names of every buildable keyboard:
// directories carrying a definition file with no deeper definition below them
// (keymap overlays do not count).
func (l *Loader) List() ([]string, error) {
	var defDirs []string
	err := filepath.Walk(l.root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			// Keymap overlays and hidden dirs never define keyboards.
			if path != l.root && (fi.Name() == keymapsDir || strings.HasPrefix(fi.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.Name() == DefinitionFile {
			if dir := filepath.Dir(path); dir != l.root {
				defDirs = append(defDirs, dir)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan keyboards root '%s': %w", l.root, err)
	}

	var names []string
	for _, dir := range defDirs {
		leaf := true
		for _, other := range defDirs {
			if other != dir && strings.HasPrefix(other, dir+string(os.PathSeparator)) {
				leaf = false
				break
			}
		}
		if !leaf {
			continue
		}
		rel, err := filepath.Rel(l.root, dir)
		if err != nil {
			continue
		}
		names = append(names, filepath.ToSlash(rel))
	}
	sort.Strings(names)
	return names, nil
}

// keyboardDir validates the keyboard name and returns its leaf directory.
func (l *Loader) keyboardDir(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty keyboard name", ErrUnknownKeyboard)
	}
	clean := filepath.ToSlash(filepath.Clean(name))
	if clean != filepath.ToSlash(name) || strings.HasPrefix(clean, "..") || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: invalid keyboard name %q", ErrUnknownKeyboard, name)
	}
	dir := filepath.Join(l.root, filepath.FromSlash(clean))
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKeyboard, name)
	}
	return dir, nil
}

// decodeDefinition reads one definition file. Files are standardized first so
// comments and trailing commas are accepted.
func decodeDefinition(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(std, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	return tree, nil
}
