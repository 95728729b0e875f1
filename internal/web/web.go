// Package web bundles the static HTML pages served by the API.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static/*.html
var static embed.FS

// Pages lists the page names served alongside the landing page.
var Pages = []string{"login.html", "chart.html"}

// FS returns the page files rooted at the static directory.
func FS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
