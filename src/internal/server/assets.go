package server

import (
	"embed"
	"io/fs"
)

//go:embed web/templates/*.html
var embeddedTemplates embed.FS

//go:embed web/static/*
var embeddedStatic embed.FS

// templateAssets returns the embedded templates
func templateAssets() fs.FS {
	subFS, err := fs.Sub(embeddedTemplates, "web/templates")
	if err != nil {
		panic("failed to create templates filesystem: " + err.Error())
	}
	return subFS
}

// staticAssets returns the embedded static assets
func staticAssets() fs.FS {
	subFS, err := fs.Sub(embeddedStatic, "web/static")
	if err != nil {
		panic("failed to create static assets filesystem: " + err.Error())
	}
	return subFS
}
