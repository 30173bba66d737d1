package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/kbforge/kbforge/internal/info"
	"github.com/kbforge/kbforge/internal/utils"
)

// NewOptions captures options for scaffolding a new keyboard
type NewOptions struct {
	Name         string // directory name under the keyboards root, may be nested (e.g. clueboard/66)
	DisplayName  string // optional display name; defaults to Name
	Manufacturer string
	VendorID     string // default: 0xFEED
	ProductID    string // default: 0x0000
}

var validSegment = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)

// New scaffolds a new keyboard directory under root using the embedded templates.
// It refuses to touch a keyboard that already exists.
func New(opts NewOptions, templates fs.FS, root string) error {
	if opts.Name == "" {
		return fmt.Errorf("keyboard name is required")
	}
	for _, seg := range strings.Split(opts.Name, "/") {
		if !validSegment.MatchString(seg) {
			return fmt.Errorf("invalid keyboard name %q: segments must be lowercase letters, digits and underscores", opts.Name)
		}
	}
	if opts.DisplayName == "" {
		opts.DisplayName = opts.Name
	}
	if opts.Manufacturer == "" {
		opts.Manufacturer = "Unknown"
	}
	if opts.VendorID == "" {
		opts.VendorID = "0xFEED"
	}
	if opts.ProductID == "" {
		opts.ProductID = "0x0000"
	}

	kbDir := filepath.Join(root, filepath.FromSlash(opts.Name))
	if utils.FileExists(filepath.Join(kbDir, info.DefinitionFile)) {
		return fmt.Errorf("keyboard %q already exists at %s", opts.Name, kbDir)
	}

	data := map[string]interface{}{
		"name":         opts.Name,
		"display_name": opts.DisplayName,
		"manufacturer": opts.Manufacturer,
		"vid":          opts.VendorID,
		"pid":          opts.ProductID,
	}

	files := []struct {
		tmpl string
		dest string
	}{
		{"templates/info.json.hbs", filepath.Join(kbDir, info.DefinitionFile)},
		{"templates/readme.md.hbs", filepath.Join(kbDir, "readme.md")},
		{"templates/keymap.json.hbs", filepath.Join(kbDir, "keymaps", "default", "keymap.json")},
	}

	for _, f := range files {
		src, err := fs.ReadFile(templates, f.tmpl)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.tmpl, err)
		}
		out, err := raymond.Render(string(src), data)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", f.tmpl, err)
		}
		if err := utils.WriteFile(f.dest, []byte(out)); err != nil {
			return err
		}
	}

	return nil
}
