package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbforge/kbforge/internal/docs"
	"github.com/kbforge/kbforge/internal/utils"
	th "github.com/kbforge/kbforge/test"
)

func TestDocsBuildOverFixtures(t *testing.T) {
	out := t.TempDir()

	builder := docs.NewBuilder()
	ctx := &docs.Context{
		Root:        th.KeyboardsFixture(),
		DestDir:     out,
		TemplatesFS: os.DirFS(th.RepoRoot()),
	}
	require.NoError(t, builder.Build(ctx))

	index, err := utils.ReadToString(filepath.Join(out, "index.html"))
	require.NoError(t, err)

	// Keyboards with a readme link to their page; minimal is listed without one.
	assert.Contains(t, index, `<a href="clueboard/66/index.html">clueboard/66</a>`)
	assert.Contains(t, index, `<a href="directpad/index.html">directpad</a>`)
	assert.Contains(t, index, "minimal")
	assert.NotContains(t, index, `minimal/index.html`)

	// Index order follows keyboard name order.
	assert.Less(t,
		strings.Index(index, "clueboard/66"),
		strings.Index(index, "directpad"))

	page, err := utils.ReadToString(filepath.Join(out, "directpad", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, page, "<h1>Directpad</h1>")
	assert.Contains(t, page, `href="../index.html"`)

	nested, err := utils.ReadToString(filepath.Join(out, "clueboard", "66", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, nested, "<h1>Clueboard 66%</h1>")
	// GFM tables render.
	assert.Contains(t, nested, "<table>")
	assert.Contains(t, nested, `href="../../index.html"`)

	assert.False(t, utils.FileExists(filepath.Join(out, "minimal", "index.html")))
}
