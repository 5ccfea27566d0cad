// Package catalog lists the products the storefront sells.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/shopspring/decimal"
)

//go:embed products.toml
var productsFS embed.FS

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	Slug          string          `toml:"slug"`
	NameRu        string          `toml:"name_ru"`
	NameEn        string          `toml:"name_en"`
	DescriptionRu string          `toml:"description_ru"`
	DescriptionEn string          `toml:"description_en"`
	Price         decimal.Decimal `toml:"price"`
}

func (p Product) Name() domain.LocalizedName {
	name := domain.LocalizedName{Ru: p.NameRu}
	if p.NameEn != "" {
		en := p.NameEn
		name.En = &en
	}
	return name
}

// CartItem is the line item added for p; the store assigns its id.
func (p Product) CartItem() domain.CartItem {
	return domain.CartItem{
		Name:  p.Name(),
		Price: domain.RUB(p.Price),
	}
}

type Catalog struct {
	products []Product
	bySlug   map[string]int
}

// Default loads the embedded product list.
func Default() (*Catalog, error) {
	return Load(productsFS, "products.toml")
}

func Load(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("fs.ReadFile[%s]: %w", path, err)
	}

	var file struct {
		Products []Product `toml:"products"`
	}
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("toml.Decode[%s]: %w", path, err)
	}

	return New(file.Products)
}

func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: products,
		bySlug:   make(map[string]int, len(products)),
	}

	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("product[%d]: %w", i, err)
		}
		if _, ok := c.bySlug[p.Slug]; ok {
			return nil, fmt.Errorf("product slug[%s] is duplicated", p.Slug)
		}
		c.bySlug[p.Slug] = i
	}

	return c, nil
}

func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Get(slug string) (Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Product{}, fmt.Errorf("slug[%s]: %w", slug, ErrProductNotFound)
	}
	return c.products[i], nil
}

func validateProduct(p Product) error {
	if p.Slug == "" {
		return fmt.Errorf("slug is empty")
	}
	if p.NameRu == "" {
		return fmt.Errorf("name_ru is empty")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price[%s] is negative", p.Price)
	}
	return nil
}
