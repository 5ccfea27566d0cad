package web_test

import (
	"io/fs"
	"testing"

	"github.com/nikolayk812/foliage-shop/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	for _, name := range []string{web.IndexPage, web.CartPage, web.ProductPage} {
		t.Run(name, func(t *testing.T) {
			data, err := web.Page(name)
			require.NoError(t, err)

			assert.Contains(t, string(data), `id="cart-counter"`)
			assert.Contains(t, string(data), `class="lang-switcher"`)
		})
	}

	_, err := web.Page("missing.html")
	require.Error(t, err)
}

func TestStatic(t *testing.T) {
	for _, path := range []string{"css/style.css", "js/notifications.js"} {
		_, err := fs.Stat(web.Static(), path)
		assert.NoError(t, err, path)
	}
}
