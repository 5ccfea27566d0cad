// Package presentation keeps a page's markup in sync with the visitor's cart, locale and notifications.
//
// Renderers look up their target regions and leave the page untouched when a region is missing,
// so one Sync serves every page variant.
package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/nikolayk812/foliage-shop/internal/i18n"
	"github.com/nikolayk812/foliage-shop/internal/notify"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markup contract.
const (
	CartItemsID   = "cart-items"
	CartTotalID   = "cart-total"
	CartFinalID   = "cart-final"
	CartCounterID = "cart-counter"

	AttrRu            = "data-ru"
	AttrEn            = "data-en"
	AttrRuPlaceholder = "data-ru-placeholder"
	AttrEnPlaceholder = "data-en-placeholder"
	AttrPriceRub      = "data-price-rub"
	AttrPriceUsd      = "data-price-usd"

	LangSwitcherClass = "lang-switcher"
	LangTextClass     = "lang-text"
	NotificationClass = "notification"
)

// State is everything a page render depends on.
type State struct {
	Cart          domain.Cart
	Locale        domain.Locale
	Notifications []notify.Snapshot
}

type Sync struct {
	catalog *i18n.Catalog
}

func NewSync(catalog *i18n.Catalog) *Sync {
	return &Sync{catalog: catalog}
}

// Page renders state into doc. The locale pass runs last so every region shows the active locale.
func (s *Sync) Page(doc *Document, state State) {
	s.RenderCart(doc, state.Cart, state.Locale)
	s.RenderNotifications(doc, state.Notifications, state.Locale)
	s.SetLocale(doc, state.Locale)
}

// RenderCart rebuilds the cart listing and both totals, then the counters.
func (s *Sync) RenderCart(doc *Document, cart domain.Cart, locale domain.Locale) {
	defer s.RenderCounters(doc, cart)

	items := doc.FirstByID(CartItemsID)
	if items == nil {
		return
	}

	removeChildren(items)

	if cart.Count() == 0 {
		items.AppendChild(s.emptyCart(locale))
	} else {
		for _, item := range cart.Items {
			items.AppendChild(s.cartRow(item, locale))
		}
	}

	total := cart.Total().Amount
	for _, id := range []string{CartTotalID, CartFinalID} {
		for _, n := range doc.ByID(id) {
			setAttr(n, AttrPriceRub, total.String())
			setText(n, i18n.FormatAmount(total, locale))
		}
	}
}

// RenderCounters writes the item count into every cart counter.
func (s *Sync) RenderCounters(doc *Document, cart domain.Cart) {
	count := strconv.Itoa(cart.Count())
	for _, n := range doc.ByID(CartCounterID) {
		setText(n, count)
	}
}

// SetLocale switches every localized region of doc to locale. Applying it twice changes nothing.
func (s *Sync) SetLocale(doc *Document, locale domain.Locale) {
	if root := doc.First(atom.Html); root != nil {
		setAttr(root, "lang", locale.String())
	}

	if title := doc.First(atom.Title); title != nil {
		setText(title, s.catalog.Text(locale, i18n.PageTitle))
	}

	textAttr, placeholderAttr := AttrRu, AttrRuPlaceholder
	if locale == domain.LocaleEn {
		textAttr, placeholderAttr = AttrEn, AttrEnPlaceholder
	}

	for _, n := range doc.WithAttr(textAttr) {
		v, _ := attr(n, textAttr)
		if textOf(n) != v {
			setText(n, v)
		}
	}

	for _, n := range doc.WithAttr(placeholderAttr) {
		v, _ := attr(n, placeholderAttr)
		setAttr(n, "placeholder", v)
	}

	for _, n := range doc.WithAttr(AttrPriceRub) {
		setText(n, priceText(n, locale))
	}

	for _, switcher := range doc.ByClass(LangSwitcherClass) {
		for _, n := range findAll(switcher, func(n *html.Node) bool { return hasClass(n, LangTextClass) }) {
			setText(n, s.catalog.Text(locale.Other(), i18n.LangSwitch))
		}
	}
}

// RenderNotifications replaces the page's banners with one per active notification.
func (s *Sync) RenderNotifications(doc *Document, notes []notify.Snapshot, locale domain.Locale) {
	body := doc.First(atom.Body)
	if body == nil {
		return
	}

	for _, n := range findAll(body, func(n *html.Node) bool { return hasClass(n, NotificationClass) }) {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}

	for _, note := range notes {
		if note.Phase == notify.PhaseAbsent {
			continue
		}
		body.AppendChild(s.banner(note, locale))
	}
}

func (s *Sync) emptyCart(locale domain.Locale) *html.Node {
	ru := func(id string) string { return s.catalog.Text(domain.LocaleRu, id) }
	en := func(id string) string { return s.catalog.Text(domain.LocaleEn, id) }

	return appendChildren(element(atom.Div, "class", "empty-cart"),
		textElement(atom.P, s.catalog.Text(locale, i18n.CartEmpty),
			AttrRu, ru(i18n.CartEmpty),
			AttrEn, en(i18n.CartEmpty)),
		textElement(atom.A, s.catalog.Text(locale, i18n.CartContinueShopping),
			"href", "/#products",
			"class", "continue-shopping",
			AttrRu, ru(i18n.CartContinueShopping),
			AttrEn, en(i18n.CartContinueShopping)),
	)
}

func (s *Sync) cartRow(item domain.CartItem, locale domain.Locale) *html.Node {
	amount := item.Price.Amount

	info := appendChildren(element(atom.Div, "class", "item-info"),
		textElement(atom.H3, item.Name.For(locale),
			AttrRu, item.Name.For(domain.LocaleRu),
			AttrEn, item.Name.For(domain.LocaleEn)),
		textElement(atom.Div, i18n.FormatAmount(amount, locale),
			"class", "item-price",
			AttrPriceRub, amount.String()),
	)

	remove := appendChildren(
		element(atom.Form,
			"method", "post",
			"action", fmt.Sprintf("/cart/items/%s/delete", item.ID),
			"class", "remove-item-form"),
		textElement(atom.Button, s.catalog.Text(locale, i18n.CartRemove),
			"type", "submit",
			"class", "remove-item",
			AttrRu, s.catalog.Text(domain.LocaleRu, i18n.CartRemove),
			AttrEn, s.catalog.Text(domain.LocaleEn, i18n.CartRemove)),
	)

	return appendChildren(
		element(atom.Div, "class", "cart-item", "data-item-id", string(item.ID)),
		info,
		remove,
	)
}

func (s *Sync) banner(note notify.Snapshot, locale domain.Locale) *html.Node {
	classes := []string{
		NotificationClass,
		"notification-" + string(note.Kind),
		"notification-" + string(note.Phase),
	}
	if note.Class != "" {
		classes = append(classes, note.Class)
	}

	return appendChildren(
		element(atom.Div,
			"class", strings.Join(classes, " "),
			"role", "status",
			"data-notification-id", note.ID,
			"data-remaining-ms", strconv.FormatInt(note.Remaining.Milliseconds(), 10)),
		textElement(atom.Span, s.catalog.TranslateNotification(note.Message, locale)),
	)
}

// priceText computes the display price from the reference amount.
// A non-numeric reference falls back to the raw attributes.
func priceText(n *html.Node, locale domain.Locale) string {
	rub, _ := attr(n, AttrPriceRub)

	amount, err := decimal.NewFromString(strings.TrimSpace(rub))
	if err == nil {
		return i18n.FormatAmount(amount, locale)
	}

	if locale == domain.LocaleEn {
		usd, _ := attr(n, AttrPriceUsd)
		return "$" + usd
	}
	return rub + " ₽"
}
