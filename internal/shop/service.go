// Package shop implements the storefront's user actions on top of the cart and locale stores.
package shop

import (
	"context"
	"fmt"

	"github.com/nikolayk812/foliage-shop/internal/catalog"
	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/nikolayk812/foliage-shop/internal/i18n"
	"github.com/nikolayk812/foliage-shop/internal/notify"
	"github.com/nikolayk812/foliage-shop/internal/port"
	"github.com/nikolayk812/foliage-shop/internal/presentation"
	"go.uber.org/zap"
)

// CartNotificationClass marks cart banners; a new one replaces the one on screen.
const CartNotificationClass = "cart-notification"

var ErrProductNotFound = catalog.ErrProductNotFound

type Notifier interface {
	Notify(ownerID, message string, kind notify.Kind, class string) notify.Notification
	Active(ownerID string) []notify.Snapshot
}

type Service struct {
	carts    port.CartStore
	locales  port.LocaleStore
	products *catalog.Catalog
	notifier Notifier
	texts    *i18n.Catalog
	logger   *zap.Logger
}

func NewService(
	carts port.CartStore,
	locales port.LocaleStore,
	products *catalog.Catalog,
	notifier Notifier,
	texts *i18n.Catalog,
	logger *zap.Logger,
) *Service {
	return &Service{
		carts:    carts,
		locales:  locales,
		products: products,
		notifier: notifier,
		texts:    texts,
		logger:   logger.Named("shop"),
	}
}

func (s *Service) Products() []catalog.Product {
	return s.products.Products()
}

func (s *Service) Product(slug string) (catalog.Product, error) {
	return s.products.Get(slug)
}

// AddProduct puts one unit of the product into the cart and announces it.
func (s *Service) AddProduct(ctx context.Context, ownerID, slug string) (domain.CartItem, error) {
	product, err := s.products.Get(slug)
	if err != nil {
		return domain.CartItem{}, err
	}

	locale, err := s.locales.Get(ctx, ownerID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("locales.Get: %w", err)
	}

	item, err := s.carts.Add(ctx, ownerID, product.CartItem())
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("carts.Add: %w", err)
	}

	s.notify(ownerID, item.Name.For(locale)+" "+s.source(i18n.NoticeAddedToCart), notify.KindSuccess, CartNotificationClass)

	return item, nil
}

// RemoveItem removes the item with id. An unknown id is not an error and announces nothing.
func (s *Service) RemoveItem(ctx context.Context, ownerID string, id domain.ItemID) (bool, error) {
	return s.removed(ctx, ownerID, func() (domain.CartItem, bool, error) {
		return s.carts.RemoveByID(ctx, ownerID, id)
	})
}

// RemoveAt removes the item at position. An out of range position is not an error and announces nothing.
func (s *Service) RemoveAt(ctx context.Context, ownerID string, position int) (bool, error) {
	return s.removed(ctx, ownerID, func() (domain.CartItem, bool, error) {
		return s.carts.RemoveAt(ctx, ownerID, position)
	})
}

// Checkout empties the cart. An empty cart is reported to the visitor and left untouched.
func (s *Service) Checkout(ctx context.Context, ownerID string) (bool, error) {
	count, err := s.carts.Count(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("carts.Count: %w", err)
	}

	if count == 0 {
		s.notify(ownerID, s.source(i18n.NoticeCartEmpty), notify.KindError, "")
		return false, nil
	}

	if err := s.carts.Clear(ctx, ownerID); err != nil {
		return false, fmt.Errorf("carts.Clear: %w", err)
	}

	s.notify(ownerID, s.source(i18n.NoticeOrderCompleted), notify.KindSuccess, "")
	s.logger.Info("order completed", zap.String("owner_id", ownerID), zap.Int("items", count))

	return true, nil
}

func (s *Service) SetLocale(ctx context.Context, ownerID string, locale domain.Locale) error {
	if err := s.locales.Set(ctx, ownerID, locale); err != nil {
		return fmt.Errorf("locales.Set: %w", err)
	}
	return nil
}

// ToggleLocale switches to the other locale and returns it.
func (s *Service) ToggleLocale(ctx context.Context, ownerID string) (domain.Locale, error) {
	current, err := s.locales.Get(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("locales.Get: %w", err)
	}

	next := current.Other()
	if err := s.SetLocale(ctx, ownerID, next); err != nil {
		return "", err
	}

	return next, nil
}

// AskQuestion acknowledges a question form submission. The question itself is not kept.
func (s *Service) AskQuestion(_ context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	s.notify(ownerID, s.source(i18n.NoticeQuestionSent), notify.KindSuccess, "")
	return nil
}

// State is what a page render of ownerID needs.
func (s *Service) State(ctx context.Context, ownerID string) (presentation.State, error) {
	cart, err := s.carts.Load(ctx, ownerID)
	if err != nil {
		return presentation.State{}, fmt.Errorf("carts.Load: %w", err)
	}

	locale, err := s.locales.Get(ctx, ownerID)
	if err != nil {
		return presentation.State{}, fmt.Errorf("locales.Get: %w", err)
	}

	return presentation.State{
		Cart:          cart,
		Locale:        locale,
		Notifications: s.notifier.Active(ownerID),
	}, nil
}

func (s *Service) removed(ctx context.Context, ownerID string, remove func() (domain.CartItem, bool, error)) (bool, error) {
	item, ok, err := remove()
	if err != nil {
		return false, fmt.Errorf("carts.Remove: %w", err)
	}
	if !ok {
		return false, nil
	}

	locale, err := s.locales.Get(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("locales.Get: %w", err)
	}

	s.notify(ownerID, item.Name.For(locale)+" "+s.source(i18n.NoticeRemovedFromCart), notify.KindError, CartNotificationClass)

	return true, nil
}

// source returns a notification template in the form notifications are stored in.
func (s *Service) source(id string) string {
	return s.texts.Text(domain.LocaleRu, id)
}

func (s *Service) notify(ownerID, message string, kind notify.Kind, class string) {
	s.notifier.Notify(ownerID, message, kind, class)
}
