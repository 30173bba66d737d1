package info

import (
	"path/filepath"
	"strings"
)

// Detect infers the keyboard (and keymap) from a working directory. When dir
// lies inside <root>/<keyboard>[/keymaps/<keymap>/...] it returns the
// keyboard's slash-separated name and, if applicable, the keymap; outside the
// keyboards tree both results are empty. Detection is purely lexical and does
// not check that the keyboard actually resolves.
func Detect(root, dir string) (keyboard, keymap string) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", ""
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", ""
	}

	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ""
	}

	segs := strings.Split(filepath.ToSlash(rel), "/")
	for i, seg := range segs {
		if seg != keymapsDir {
			continue
		}
		keyboard = strings.Join(segs[:i], "/")
		if i+1 < len(segs) {
			keymap = segs[i+1]
		}
		return keyboard, keymap
	}
	return strings.Join(segs, "/"), ""
}
