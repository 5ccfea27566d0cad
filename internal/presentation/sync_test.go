package presentation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/nikolayk812/foliage-shop/internal/i18n"
	"github.com/nikolayk812/foliage-shop/internal/notify"
	"github.com/nikolayk812/foliage-shop/internal/presentation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const cartPage = `<!DOCTYPE html>
<html lang="ru">
<head><title>FOLIAGE - VR/AR Медитация</title></head>
<body>
<header>
  <form method="post" action="/language" class="lang-switcher-form">
    <button type="submit" class="lang-switcher"><span class="lang-text">EN</span></button>
  </form>
  <a href="/cart">Cart <span id="cart-counter">0</span></a>
</header>
<h1 data-ru="Корзина" data-en="Cart">Корзина</h1>
<div id="cart-items"></div>
<div>Total: <span id="cart-total"></span></div>
<div>Final: <span id="cart-final"></span></div>
<footer><span id="cart-counter">0</span></footer>
<input name="email" data-ru-placeholder="Ваш email" data-en-placeholder="Your email" placeholder="Ваш email">
<span class="price" data-price-rub="1000" data-price-usd="12">1000 ₽</span>
<span class="price-raw" data-price-rub="по запросу" data-price-usd="on request">по запросу ₽</span>
</body>
</html>`

const barePage = `<!DOCTYPE html><html><head></head><body><p>nothing to sync</p></body></html>`

type syncSuite struct {
	suite.Suite

	sync *presentation.Sync
}

func TestSyncSuite(t *testing.T) {
	suite.Run(t, new(syncSuite))
}

// before all tests in the suite
func (s *syncSuite) SetupSuite() {
	catalog, err := i18n.NewCatalog()
	s.Require().NoError(err)

	s.sync = presentation.NewSync(catalog)
}

func (s *syncSuite) TestRenderCartItems() {
	doc := s.parse(cartPage)
	cart := sampleCart()

	s.sync.RenderCart(doc, cart, domain.LocaleRu)

	rows := doc.ByClass("cart-item")
	s.Require().Len(rows, 2)

	out := normalize(doc.String())
	s.Contains(out, "<h3")
	s.Contains(out, ">Лесная медитация</h3>")
	s.Contains(out, ">Горный рассвет</h3>")
	s.Contains(out, `action="/cart/items/item-1/delete"`)
	s.Contains(out, `action="/cart/items/item-2/delete"`)
	s.Contains(out, `>1 000 ₽</div>`)
	s.Contains(out, `id="cart-total" data-price-rub="3490">3 490 ₽</span>`)
	s.Contains(out, `id="cart-final" data-price-rub="3490">3 490 ₽</span>`)

	for _, counter := range doc.ByID("cart-counter") {
		s.Equal("2", counter.FirstChild.Data)
	}
}

func (s *syncSuite) TestRenderCartEnglish() {
	doc := s.parse(cartPage)

	s.sync.Page(doc, presentation.State{Cart: sampleCart(), Locale: domain.LocaleEn})

	out := doc.String()
	s.Contains(out, ">Forest Meditation</h3>")
	// no English name: falls back to the source name
	s.Contains(out, ">Горный рассвет</h3>")
	s.Contains(out, ">$12</div>")
	s.Contains(out, ">$43</span>")
	s.Contains(out, ">Remove</button>")
}

func (s *syncSuite) TestRenderCartRebuildsFromScratch() {
	doc := s.parse(cartPage)

	s.sync.RenderCart(doc, sampleCart(), domain.LocaleRu)
	s.sync.RenderCart(doc, domain.Cart{Items: sampleCart().Items[:1]}, domain.LocaleRu)

	s.Len(doc.ByClass("cart-item"), 1)
}

func (s *syncSuite) TestRenderEmptyCart() {
	tests := []struct {
		locale       domain.Locale
		wantEmpty    string
		wantContinue string
		wantTotal    string
	}{
		{locale: domain.LocaleRu, wantEmpty: "Корзина пуста", wantContinue: "Вернуться к покупкам", wantTotal: "0 ₽"},
		{locale: domain.LocaleEn, wantEmpty: "Cart is empty", wantContinue: "Continue Shopping", wantTotal: "$0"},
	}

	for _, tt := range tests {
		s.Run(tt.locale.String(), func() {
			doc := s.parse(cartPage)

			s.sync.Page(doc, presentation.State{Locale: tt.locale})

			out := doc.String()
			s.Len(doc.ByClass("empty-cart"), 1)
			s.Empty(doc.ByClass("cart-item"))
			s.Contains(out, ">"+tt.wantEmpty+"</p>")
			s.Contains(out, ">"+tt.wantContinue+"</a>")
			s.Contains(out, `href="/#products"`)
			s.Contains(out, ">"+tt.wantTotal+"</span>")
		})
	}
}

func (s *syncSuite) TestSetLocale() {
	doc := s.parse(cartPage)

	s.sync.SetLocale(doc, domain.LocaleEn)

	out := normalize(doc.String())
	s.Contains(out, `<html lang="en">`)
	s.Contains(out, "<title>FOLIAGE - VR/AR Meditation</title>")
	s.Contains(out, ">Cart</h1>")
	s.Contains(out, `placeholder="Your email"`)
	s.Contains(out, `<span class="lang-text">RU</span>`)
	s.Contains(out, `data-price-usd="12">$12</span>`)
	s.Contains(out, `data-price-usd="on request">$on request</span>`)

	s.sync.SetLocale(doc, domain.LocaleRu)

	out = normalize(doc.String())
	s.Contains(out, `<html lang="ru">`)
	s.Contains(out, "<title>FOLIAGE - VR/AR Медитация</title>")
	s.Contains(out, ">Корзина</h1>")
	s.Contains(out, `placeholder="Ваш email"`)
	s.Contains(out, `<span class="lang-text">EN</span>`)
	s.Contains(out, `data-price-usd="12">1 000 ₽</span>`)
	s.Contains(out, `data-price-usd="on request">по запросу ₽</span>`)
}

func (s *syncSuite) TestSetLocaleIsIdempotent() {
	for _, locale := range []domain.Locale{domain.LocaleRu, domain.LocaleEn} {
		s.Run(locale.String(), func() {
			once := s.parse(cartPage)
			s.sync.Page(once, presentation.State{Cart: sampleCart(), Locale: locale})

			twice := s.parse(cartPage)
			s.sync.Page(twice, presentation.State{Cart: sampleCart(), Locale: locale})
			s.sync.SetLocale(twice, locale)

			s.Equal(once.String(), twice.String())
		})
	}
}

func (s *syncSuite) TestRenderNotifications() {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	notes := []notify.Snapshot{
		notify.Notification{
			ID:       "n1",
			Class:    "cart-notification",
			Kind:     notify.KindSuccess,
			Message:  "Лесная медитация добавлен в корзину!",
			IssuedAt: issued,
		}.SnapshotAt(issued.Add(time.Second)),
		notify.Notification{
			ID:       "n2",
			Kind:     notify.KindError,
			Message:  "Корзина пуста!",
			IssuedAt: issued,
		}.SnapshotAt(issued.Add(3100 * time.Millisecond)),
	}

	doc := s.parse(cartPage)
	s.sync.RenderNotifications(doc, notes, domain.LocaleEn)
	// a second render replaces the banners instead of stacking them
	s.sync.RenderNotifications(doc, notes, domain.LocaleEn)

	banners := doc.ByClass("notification")
	s.Require().Len(banners, 2)

	out := doc.String()
	s.Contains(out, `class="notification notification-success notification-visible cart-notification"`)
	s.Contains(out, `data-remaining-ms="2000"`)
	s.Contains(out, "<span>Лесная медитация added to cart!</span>")
	s.Contains(out, `class="notification notification-error notification-dismissing"`)
	s.Contains(out, `data-remaining-ms="200"`)
	s.Contains(out, "<span>Cart is empty!</span>")
}

func (s *syncSuite) TestMissingTargetsAreNoOps() {
	doc := s.parse(barePage)
	before := doc.String()

	s.sync.RenderCart(doc, sampleCart(), domain.LocaleEn)
	s.sync.RenderCounters(doc, sampleCart())

	s.Equal(before, doc.String())

	s.NotPanics(func() {
		s.sync.Page(doc, presentation.State{Cart: sampleCart(), Locale: domain.LocaleEn})
	})
	s.Contains(doc.String(), `<html lang="en">`)
}

func (s *syncSuite) parse(page string) *presentation.Document {
	doc, err := presentation.Parse(strings.NewReader(page))
	s.Require().NoError(err)
	return doc
}

func sampleCart() domain.Cart {
	en := "Forest Meditation"
	return domain.Cart{Items: []domain.CartItem{
		{
			ID:    "item-1",
			Name:  domain.LocalizedName{Ru: "Лесная медитация", En: &en},
			Price: domain.RUB(decimal.NewFromInt(1000)),
		},
		{
			ID:    "item-2",
			Name:  domain.LocalizedName{Ru: "Горный рассвет"},
			Price: domain.RUB(decimal.NewFromInt(2490)),
		},
	}}
}

var spaces = strings.NewReplacer("\u00a0", " ", "\u202f", " ")

func normalize(s string) string {
	return spaces.Replace(s)
}

func TestDocumentRenderRoundTrip(t *testing.T) {
	doc, err := presentation.ParseBytes([]byte(barePage))
	require.NoError(t, err)

	assert.Contains(t, doc.String(), "<p>nothing to sync</p>")
	assert.Nil(t, doc.FirstByID("cart-items"))
}
