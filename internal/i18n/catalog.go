// Package i18n holds the storefront texts for both locales, the notification
// translation table and locale-aware price formatting.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/nikolayk812/foliage-shop/internal/domain"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Message IDs rendered by the storefront.
const (
	PageTitle            = "page_title"
	LangSwitch           = "lang_switch"
	CartEmpty            = "cart_empty"
	CartContinueShopping = "cart_continue_shopping"
	CartRemove           = "cart_remove"
	ProductDetails       = "product_details"
	ProductAddToCart     = "product_add_to_cart"

	NoticeAddedToCart     = "notice_added_to_cart"
	NoticeQuestionSent    = "notice_question_sent"
	NoticeCartEmpty       = "notice_cart_empty"
	NoticeOrderCompleted  = "notice_order_completed"
	NoticeRemovedFromCart = "notice_removed_from_cart"
)

// notificationTemplates is searched in order; the first template contained in a message wins.
var notificationTemplates = []string{
	NoticeAddedToCart,
	NoticeQuestionSent,
	NoticeCartEmpty,
	NoticeOrderCompleted,
	NoticeRemovedFromCart,
}

type Catalog struct {
	bundle     *i18n.Bundle
	localizers map[domain.Locale]*i18n.Localizer
}

// NewCatalog loads the embedded message files. Russian is the source language.
func NewCatalog() (*Catalog, error) {
	bundle := i18n.NewBundle(language.Russian)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, locale := range []domain.Locale{domain.LocaleRu, domain.LocaleEn} {
		path := fmt.Sprintf("locales/active.%s.toml", locale)
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("bundle.LoadMessageFileFS[%s]: %w", path, err)
		}
	}

	return &Catalog{
		bundle: bundle,
		localizers: map[domain.Locale]*i18n.Localizer{
			domain.LocaleRu: i18n.NewLocalizer(bundle, domain.LocaleRu.String()),
			domain.LocaleEn: i18n.NewLocalizer(bundle, domain.LocaleEn.String()),
		},
	}, nil
}

// Text returns the message for locale, or the id itself when the catalog has no such message.
func (c *Catalog) Text(locale domain.Locale, id string) string {
	localizer, ok := c.localizers[locale]
	if !ok {
		localizer = c.localizers[domain.DefaultLocale]
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}

// TranslateNotification renders a Russian notification message for locale.
// A known template embedded in a longer message keeps the surrounding text (the product name)
// in front of the English phrase. Unknown messages pass through unchanged.
func (c *Catalog) TranslateNotification(message string, locale domain.Locale) string {
	if locale != domain.LocaleEn {
		return message
	}

	for _, id := range notificationTemplates {
		ru := c.Text(domain.LocaleRu, id)
		if !strings.Contains(message, ru) {
			continue
		}

		en := c.Text(domain.LocaleEn, id)
		if message == ru {
			return en
		}

		rest := strings.TrimSpace(strings.Replace(message, ru, "", 1))
		return rest + " " + en
	}

	return message
}
