// Package docs renders keyboard readme files into a static HTML reference.
package docs

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/kbforge/kbforge/internal/info"
	"github.com/kbforge/kbforge/internal/utils"
)

// Context holds context for a docs build
type Context struct {
	Root    string // keyboards root
	DestDir string // output directory
	// TemplatesFS provides the embedded page templates (expects paths under "templates/")
	TemplatesFS fs.FS
}

// Builder renders keyboards to HTML
type Builder struct {
	markdown goldmark.Markdown
}

// NewBuilder creates a new docs builder
func NewBuilder() *Builder {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			ghtml.WithUnsafe(),
		),
	)
	return &Builder{markdown: md}
}

// Build renders one page per keyboard readme plus a root index linking every
// keyboard. Keyboards without a readme are listed on the index but get no
// page of their own. Output is deterministic: keyboards are processed in
// sorted order.
func (b *Builder) Build(ctx *Context) error {
	loader := info.NewLoader(ctx.Root)
	names, err := loader.List()
	if err != nil {
		return fmt.Errorf("failed to list keyboards: %w", err)
	}

	// Create output directory
	if err := os.MkdirAll(ctx.DestDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pageSrc, err := fs.ReadFile(ctx.TemplatesFS, "templates/docs_page.hbs")
	if err != nil {
		return fmt.Errorf("failed to read docs_page.hbs: %w", err)
	}
	indexSrc, err := fs.ReadFile(ctx.TemplatesFS, "templates/docs_index.hbs")
	if err != nil {
		return fmt.Errorf("failed to read docs_index.hbs: %w", err)
	}

	keyboards := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		readme := filepath.Join(ctx.Root, filepath.FromSlash(name), "readme.md")
		if !utils.FileExists(readme) {
			keyboards = append(keyboards, map[string]interface{}{"name": name, "href": ""})
			continue
		}

		source, err := utils.ReadToString(readme)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := b.markdown.Convert([]byte(source), &buf); err != nil {
			return fmt.Errorf("failed to convert '%s': %w", readme, err)
		}

		data := map[string]interface{}{
			"title":        name,
			"path_to_root": strings.Repeat("../", strings.Count(name, "/")+1),
			"content":      raymond.SafeString(buf.String()),
		}
		page, err := raymond.Render(string(pageSrc), data)
		if err != nil {
			return fmt.Errorf("failed to render page for %s: %w", name, err)
		}
		dest := filepath.Join(ctx.DestDir, filepath.FromSlash(name), "index.html")
		if err := utils.WriteFile(dest, []byte(page)); err != nil {
			return err
		}

		keyboards = append(keyboards, map[string]interface{}{"name": name, "href": name + "/index.html"})
	}

	index, err := raymond.Render(string(indexSrc), map[string]interface{}{
		"title":     "Keyboards",
		"keyboards": keyboards,
	})
	if err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return utils.WriteFile(filepath.Join(ctx.DestDir, "index.html"), []byte(index))
}
