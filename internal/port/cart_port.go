package port

import (
	"context"

	"github.com/nikolayk812/foliage-shop/internal/domain"
)

type CartStore interface {
	Load(ctx context.Context, ownerID string) (domain.Cart, error)
	Add(ctx context.Context, ownerID string, item domain.CartItem) (domain.CartItem, error)
	RemoveAt(ctx context.Context, ownerID string, position int) (domain.CartItem, bool, error)
	RemoveByID(ctx context.Context, ownerID string, id domain.ItemID) (domain.CartItem, bool, error)
	Clear(ctx context.Context, ownerID string) error
	Count(ctx context.Context, ownerID string) (int, error)
}

type LocaleStore interface {
	Get(ctx context.Context, ownerID string) (domain.Locale, error)
	Set(ctx context.Context, ownerID string, locale domain.Locale) error
}
