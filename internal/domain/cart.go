package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemID string

func NewItemID() ItemID {
	return ItemID(uuid.NewString())
}

type Cart struct {
	Items []CartItem
}

type CartItem struct {
	ID    ItemID
	Name  LocalizedName
	Price Money
}

// LocalizedName holds the source (Russian) name and an optional English variant.
type LocalizedName struct {
	Ru string
	En *string
}

func (n LocalizedName) For(locale Locale) string {
	if locale == LocaleEn && n.En != nil && *n.En != "" {
		return *n.En
	}
	return n.Ru
}

func (c Cart) Count() int {
	return len(c.Items)
}

func (c Cart) Total() Money {
	total := RUB(decimal.Zero)
	for _, item := range c.Items {
		total = total.Add(item.Price)
	}
	return total
}

func (c Cart) IndexOf(id ItemID) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
