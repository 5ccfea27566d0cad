// Package cart keeps a visitor's cart under the "cart" storage key.
//
// Every mutator persists the whole cart through port.Storage.UpdateItem before it returns,
// so storage always mirrors the sequence the caller saw.
package cart

import (
	"context"
	"fmt"

	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/nikolayk812/foliage-shop/internal/port"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const Key = "cart"

var cartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_cart_operations_total",
		Help: "Cart mutations that changed persisted state.",
	},
	[]string{"operation"},
)

type store struct {
	storage port.Storage
	logger  *zap.Logger
}

func NewStore(storage port.Storage, logger *zap.Logger) port.CartStore {
	return &store{
		storage: storage,
		logger:  logger.Named("cart"),
	}
}

func (s *store) Load(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	raw, found, err := s.storage.GetItem(ctx, ownerID, Key)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("storage.GetItem: %w", err)
	}

	cart, assignedID := s.decode(ownerID, raw, found)
	if !assignedID {
		return cart, nil
	}

	// items written without ids get them persisted now, otherwise they could not be removed by id
	return s.mutate(ctx, ownerID, func(*domain.Cart) bool { return false })
}

func (s *store) Add(ctx context.Context, ownerID string, item domain.CartItem) (domain.CartItem, error) {
	if ownerID == "" {
		return domain.CartItem{}, fmt.Errorf("ownerID is empty")
	}

	if item.Price.Currency == (currency.Unit{}) {
		item.Price.Currency = currency.RUB
	}
	if item.Price.Currency != currency.RUB {
		return domain.CartItem{}, fmt.Errorf("price currency[%s] is not %s", item.Price.Currency, currency.RUB)
	}
	if item.ID == "" {
		item.ID = domain.NewItemID()
	}

	_, err := s.mutate(ctx, ownerID, func(cart *domain.Cart) bool {
		cart.Items = append(cart.Items, item)
		return true
	})
	if err != nil {
		return domain.CartItem{}, err
	}

	cartOperationsTotal.WithLabelValues("add").Inc()
	s.logger.Debug("item added",
		zap.String("owner_id", ownerID),
		zap.String("item_id", string(item.ID)),
		zap.String("price", item.Price.Amount.String()))

	return item, nil
}

func (s *store) RemoveAt(ctx context.Context, ownerID string, position int) (domain.CartItem, bool, error) {
	if ownerID == "" {
		return domain.CartItem{}, false, fmt.Errorf("ownerID is empty")
	}

	return s.remove(ctx, ownerID, "remove_at", func(cart domain.Cart) int {
		if position < 0 || position >= cart.Count() {
			return -1
		}
		return position
	})
}

func (s *store) RemoveByID(ctx context.Context, ownerID string, id domain.ItemID) (domain.CartItem, bool, error) {
	if ownerID == "" {
		return domain.CartItem{}, false, fmt.Errorf("ownerID is empty")
	}

	return s.remove(ctx, ownerID, "remove_by_id", func(cart domain.Cart) int {
		return cart.IndexOf(id)
	})
}

func (s *store) Clear(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	empty, err := encodeCart(domain.Cart{})
	if err != nil {
		return err
	}

	if err := s.storage.SetItem(ctx, ownerID, Key, empty); err != nil {
		return fmt.Errorf("storage.SetItem: %w", err)
	}

	cartOperationsTotal.WithLabelValues("clear").Inc()
	s.logger.Debug("cart cleared", zap.String("owner_id", ownerID))

	return nil
}

func (s *store) Count(ctx context.Context, ownerID string) (int, error) {
	cart, err := s.Load(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	return cart.Count(), nil
}

// remove deletes the item at the index chosen by pick; pick returns -1 to leave the cart as is.
func (s *store) remove(ctx context.Context, ownerID, operation string, pick func(domain.Cart) int) (domain.CartItem, bool, error) {
	var (
		removed domain.CartItem
		ok      bool
	)

	_, err := s.mutate(ctx, ownerID, func(cart *domain.Cart) bool {
		removed, ok = domain.CartItem{}, false

		idx := pick(*cart)
		if idx < 0 {
			return false
		}

		removed, ok = cart.Items[idx], true
		cart.Items = append(cart.Items[:idx:idx], cart.Items[idx+1:]...)
		return true
	})
	if err != nil {
		return domain.CartItem{}, false, err
	}

	if ok {
		cartOperationsTotal.WithLabelValues(operation).Inc()
		s.logger.Debug("item removed",
			zap.String("owner_id", ownerID),
			zap.String("item_id", string(removed.ID)))
	}

	return removed, ok, nil
}

// mutate runs fn on the persisted cart inside one atomic storage update.
// The cart is written back when fn reports a change or when ids had to be assigned.
func (s *store) mutate(ctx context.Context, ownerID string, fn func(cart *domain.Cart) bool) (domain.Cart, error) {
	var result domain.Cart

	err := s.storage.UpdateItem(ctx, ownerID, Key, func(current string, found bool) (string, bool, error) {
		cart, assignedID := s.decode(ownerID, current, found)

		changed := fn(&cart)
		result = cart

		if !changed && !assignedID {
			return "", false, nil
		}

		next, err := encodeCart(cart)
		if err != nil {
			return "", false, err
		}
		return next, true, nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("storage.UpdateItem: %w", err)
	}

	return result, nil
}

// decode never fails: malformed data is logged and read as an empty cart.
func (s *store) decode(ownerID, raw string, found bool) (domain.Cart, bool) {
	if !found || raw == "" || raw == "null" {
		return domain.Cart{}, false
	}

	cart, assignedID, err := decodeCart(raw)
	if err != nil {
		s.logger.Warn("persisted cart is malformed, treating it as empty",
			zap.String("owner_id", ownerID),
			zap.Error(err))
		return domain.Cart{}, false
	}

	return cart, assignedID
}
