package main

import (
	"embed"
)

// embeddedTemplates contains the scaffolding and docs page templates.
//
//go:embed templates
var embeddedTemplates embed.FS
