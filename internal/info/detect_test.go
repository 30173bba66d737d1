package info

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kbforge/kbforge/internal/testutil"
)

func TestDetectInsideKeyboardDir(t *testing.T) {
	root := testutil.TempKeyboards(t)

	kb, km := Detect(root, filepath.Join(root, "clueboard", "66"))
	assert.Equal(t, "clueboard/66", kb)
	assert.Equal(t, "", km)
}

func TestDetectInsideKeymapDir(t *testing.T) {
	root := testutil.TempKeyboards(t)

	kb, km := Detect(root, filepath.Join(root, "clueboard", "66", "keymaps", "default"))
	assert.Equal(t, "clueboard/66", kb)
	assert.Equal(t, "default", km)

	// Anywhere below the keymap still detects it
	kb, km = Detect(root, filepath.Join(root, "clueboard", "66", "keymaps", "default", "assets"))
	assert.Equal(t, "clueboard/66", kb)
	assert.Equal(t, "default", km)
}

func TestDetectOutsideTree(t *testing.T) {
	root := testutil.TempKeyboards(t)

	kb, km := Detect(root, t.TempDir())
	assert.Equal(t, "", kb)
	assert.Equal(t, "", km)

	// The root itself names no keyboard
	kb, km = Detect(root, root)
	assert.Equal(t, "", kb)
	assert.Equal(t, "", km)
}
