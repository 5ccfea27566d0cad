package presentation

import (
	"github.com/nikolayk812/foliage-shop/internal/catalog"
	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/nikolayk812/foliage-shop/internal/i18n"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	ProductListID        = "product-list"
	ProductNameID        = "product-name"
	ProductDescriptionID = "product-description"
	ProductPriceID       = "product-price"
	AddToCartFormID      = "add-to-cart-form"

	ProductField = "product"
)

// RenderProducts fills the product list with one card per product.
func (s *Sync) RenderProducts(doc *Document, products []catalog.Product, locale domain.Locale) {
	list := doc.FirstByID(ProductListID)
	if list == nil {
		return
	}

	removeChildren(list)
	for _, p := range products {
		list.AppendChild(s.productCard(p, locale))
	}
}

// RenderProduct fills a product page with p and points its add-to-cart form at it.
func (s *Sync) RenderProduct(doc *Document, p catalog.Product, locale domain.Locale) {
	for _, n := range doc.ByID(ProductNameID) {
		setLocalized(n, p.NameRu, p.Name().For(domain.LocaleEn), locale)
	}

	for _, n := range doc.ByID(ProductDescriptionID) {
		setLocalized(n, p.DescriptionRu, fallback(p.DescriptionEn, p.DescriptionRu), locale)
	}

	for _, n := range doc.ByID(ProductPriceID) {
		setAttr(n, AttrPriceRub, p.Price.String())
		setText(n, i18n.FormatAmount(p.Price, locale))
	}

	form := doc.FirstByID(AddToCartFormID)
	if form == nil {
		return
	}

	inputs := findAll(form, func(n *html.Node) bool {
		name, _ := attr(n, "name")
		return n.DataAtom == atom.Input && name == ProductField
	})
	if len(inputs) == 0 {
		form.AppendChild(element(atom.Input, "type", "hidden", "name", ProductField, "value", p.Slug))
		return
	}
	for _, n := range inputs {
		setAttr(n, "value", p.Slug)
	}
}

func (s *Sync) productCard(p catalog.Product, locale domain.Locale) *html.Node {
	name := element(atom.H3)
	setLocalized(name, p.NameRu, p.Name().For(domain.LocaleEn), locale)

	description := element(atom.P, "class", "product-description")
	setLocalized(description, p.DescriptionRu, fallback(p.DescriptionEn, p.DescriptionRu), locale)

	price := textElement(atom.Span, i18n.FormatAmount(p.Price, locale),
		"class", "product-price",
		AttrPriceRub, p.Price.String())

	details := element(atom.A, "href", "/products/"+p.Slug, "class", "product-details")
	setLocalized(details,
		s.catalog.Text(domain.LocaleRu, i18n.ProductDetails),
		s.catalog.Text(domain.LocaleEn, i18n.ProductDetails),
		locale)

	button := element(atom.Button, "type", "submit", "class", "add-to-cart")
	setLocalized(button,
		s.catalog.Text(domain.LocaleRu, i18n.ProductAddToCart),
		s.catalog.Text(domain.LocaleEn, i18n.ProductAddToCart),
		locale)

	form := appendChildren(element(atom.Form, "method", "post", "action", "/cart/items"),
		element(atom.Input, "type", "hidden", "name", ProductField, "value", p.Slug),
		button,
	)

	return appendChildren(element(atom.Article, "class", "product-card", "data-product", p.Slug),
		name, description, price, details, form)
}

// setLocalized stores both variants on n and shows the one for locale.
func setLocalized(n *html.Node, ru, en string, locale domain.Locale) {
	setAttr(n, AttrRu, ru)
	setAttr(n, AttrEn, en)

	if locale == domain.LocaleEn {
		setText(n, en)
		return
	}
	setText(n, ru)
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
