// Package preference persists the visitor's display locale under the "preferredLanguage" key.
package preference

import (
	"context"
	"fmt"

	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/nikolayk812/foliage-shop/internal/port"
	"go.uber.org/zap"
)

const Key = "preferredLanguage"

type store struct {
	storage port.Storage
	logger  *zap.Logger
}

func NewStore(storage port.Storage, logger *zap.Logger) port.LocaleStore {
	return &store{
		storage: storage,
		logger:  logger.Named("preference"),
	}
}

// Get returns the default locale when nothing valid is stored.
func (s *store) Get(ctx context.Context, ownerID string) (domain.Locale, error) {
	if ownerID == "" {
		return "", fmt.Errorf("ownerID is empty")
	}

	raw, found, err := s.storage.GetItem(ctx, ownerID, Key)
	if err != nil {
		return "", fmt.Errorf("storage.GetItem: %w", err)
	}
	if !found {
		return domain.DefaultLocale, nil
	}

	locale := domain.ParseLocale(raw)
	if locale.String() != raw {
		s.logger.Warn("stored locale is invalid, using default",
			zap.String("owner_id", ownerID),
			zap.String("stored", raw))
	}

	return locale, nil
}

func (s *store) Set(ctx context.Context, ownerID string, locale domain.Locale) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	locale = domain.ParseLocale(locale.String())

	if err := s.storage.SetItem(ctx, ownerID, Key, locale.String()); err != nil {
		return fmt.Errorf("storage.SetItem: %w", err)
	}

	return nil
}
