package presentation_test

import (
	"github.com/nikolayk812/foliage-shop/internal/catalog"
	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/shopspring/decimal"
)

const productPage = `<!DOCTYPE html>
<html lang="ru">
<head><title>FOLIAGE</title></head>
<body>
<h1 id="product-name"></h1>
<p id="product-description"></p>
<span id="product-price"></span>
<form id="add-to-cart-form" method="post" action="/cart/items">
  <input type="hidden" name="redirect" value="/cart">
  <button type="submit">В корзину</button>
</form>
</body>
</html>`

const indexPage = `<!DOCTYPE html>
<html lang="ru">
<head><title>FOLIAGE</title></head>
<body><section id="products"><div id="product-list"><p>placeholder</p></div></section></body>
</html>`

var forest = catalog.Product{
	Slug:          "forest",
	NameRu:        "Лесная медитация",
	NameEn:        "Forest Meditation",
	DescriptionRu: "Сосны и птицы.",
	Price:         decimal.NewFromInt(1990),
}

func (s *syncSuite) TestRenderProduct() {
	doc := s.parse(productPage)

	s.sync.RenderProduct(doc, forest, domain.LocaleEn)

	out := doc.String()
	s.Contains(out, `>Forest Meditation</h1>`)
	// no English description: falls back to the source text
	s.Contains(out, `data-en="Сосны и птицы.">Сосны и птицы.</p>`)
	s.Contains(out, `data-price-rub="1990">$25</span>`)
	s.Contains(out, `<input type="hidden" name="product" value="forest"/>`)
	s.Contains(out, `name="redirect" value="/cart"`)
}

func (s *syncSuite) TestRenderProducts() {
	doc := s.parse(indexPage)
	dawn := catalog.Product{Slug: "dawn", NameRu: "Горный рассвет", Price: decimal.NewFromInt(2490)}

	s.sync.RenderProducts(doc, []catalog.Product{forest, dawn}, domain.LocaleRu)

	cards := doc.ByClass("product-card")
	s.Require().Len(cards, 2)

	out := normalize(doc.String())
	s.NotContains(out, "placeholder")
	s.Contains(out, `href="/products/forest"`)
	s.Contains(out, `href="/products/dawn"`)
	s.Contains(out, `name="product" value="dawn"`)
	s.Contains(out, `>1 990 ₽</span>`)
	s.Contains(out, `>В корзину</button>`)
}
