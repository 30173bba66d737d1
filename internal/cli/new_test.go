package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbforge/kbforge/internal/info"
	"github.com/kbforge/kbforge/internal/testutil"
)

// repoFS serves the repository root so template paths resolve the same way
// they do through the embedded FS at runtime.
func repoFS(t *testing.T) fs.FS {
	t.Helper()
	return os.DirFS(filepath.Join("..", ".."))
}

func TestNewScaffoldsKeyboard(t *testing.T) {
	root := testutil.TempKeyboards(t)

	opts := NewOptions{
		Name:         "acme/pad",
		DisplayName:  "Acme Pad",
		Manufacturer: "Acme",
		VendorID:     "0xFEED",
		ProductID:    "0x6060",
	}
	require.NoError(t, New(opts, repoFS(t), root))

	infoJSON := testutil.ReadFile(t, root, filepath.Join("acme", "pad", "info.json"))
	assert.Contains(t, infoJSON, `"keyboard_name": "Acme Pad"`)
	assert.Contains(t, infoJSON, `"manufacturer": "Acme"`)
	assert.Contains(t, infoJSON, `"vid": "0xFEED"`)
	assert.Contains(t, infoJSON, `"pid": "0x6060"`)

	readme := testutil.ReadFile(t, root, filepath.Join("acme", "pad", "readme.md"))
	assert.Contains(t, readme, "# Acme Pad")
	assert.Contains(t, readme, "kbforge generate -kb acme/pad")

	keymap := testutil.ReadFile(t, root, filepath.Join("acme", "pad", "keymaps", "default", "keymap.json"))
	assert.Contains(t, keymap, `"keyboard": "acme/pad"`)
}

func TestNewAppliesDefaults(t *testing.T) {
	root := testutil.TempKeyboards(t)

	require.NoError(t, New(NewOptions{Name: "pad"}, repoFS(t), root))

	infoJSON := testutil.ReadFile(t, root, filepath.Join("pad", "info.json"))
	assert.Contains(t, infoJSON, `"keyboard_name": "pad"`)
	assert.Contains(t, infoJSON, `"manufacturer": "Unknown"`)
	assert.Contains(t, infoJSON, `"vid": "0xFEED"`)
	assert.Contains(t, infoJSON, `"pid": "0x0000"`)
}

func TestNewScaffoldResolves(t *testing.T) {
	root := testutil.TempKeyboards(t)
	require.NoError(t, New(NewOptions{Name: "pad"}, repoFS(t), root))

	record, err := info.NewLoader(root).Resolve("pad", "")
	require.NoError(t, err)
	require.NotNil(t, record.Matrix)
	assert.Len(t, record.Matrix.Cols, 2)
	assert.Len(t, record.Matrix.Rows, 2)
}

func TestNewRequiresName(t *testing.T) {
	root := testutil.TempKeyboards(t)
	err := New(NewOptions{}, repoFS(t), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestNewRejectsBadSegments(t *testing.T) {
	root := testutil.TempKeyboards(t)

	for _, name := range []string{"Bad Name", "UPPER", "a/../b", "-lead", "a//b"} {
		err := New(NewOptions{Name: name}, repoFS(t), root)
		require.Error(t, err, "name %q", name)
	}
}

func TestNewRefusesExistingKeyboard(t *testing.T) {
	root := testutil.TempKeyboards(t)
	testutil.WriteInfoJSON(t, root, "pad", `{"keyboard_name": "Pad"}`)

	err := New(NewOptions{Name: "pad"}, repoFS(t), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// The pre-existing definition is untouched.
	infoJSON := testutil.ReadFile(t, root, filepath.Join("pad", "info.json"))
	assert.Equal(t, `{"keyboard_name": "Pad"}`, infoJSON)
}
