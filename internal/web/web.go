// Package web embeds the storefront page markup and static assets.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

const (
	IndexPage   = "index.html"
	CartPage    = "cart.html"
	ProductPage = "product.html"
)

//go:embed pages/*.html
var pagesFS embed.FS

//go:embed static
var staticFS embed.FS

// Page returns the markup of an embedded page.
func Page(name string) ([]byte, error) {
	data, err := pagesFS.ReadFile("pages/" + name)
	if err != nil {
		return nil, fmt.Errorf("pagesFS.ReadFile[%s]: %w", name, err)
	}
	return data, nil
}

// Static is the asset tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded, Sub cannot fail
		panic(err)
	}
	return sub
}
