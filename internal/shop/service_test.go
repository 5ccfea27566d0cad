package shop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/foliage-shop/internal/cart"
	"github.com/nikolayk812/foliage-shop/internal/catalog"
	"github.com/nikolayk812/foliage-shop/internal/domain"
	"github.com/nikolayk812/foliage-shop/internal/i18n"
	"github.com/nikolayk812/foliage-shop/internal/notify"
	"github.com/nikolayk812/foliage-shop/internal/port"
	"github.com/nikolayk812/foliage-shop/internal/preference"
	"github.com/nikolayk812/foliage-shop/internal/repository"
	"github.com/nikolayk812/foliage-shop/internal/shop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) GetItem(ctx context.Context, ownerID, key string) (string, bool, error) {
	args := m.Called(ctx, ownerID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStorage) SetItem(ctx context.Context, ownerID, key, value string) error {
	return m.Called(ctx, ownerID, key, value).Error(0)
}

func (m *mockStorage) RemoveItem(ctx context.Context, ownerID, key string) error {
	return m.Called(ctx, ownerID, key).Error(0)
}

func (m *mockStorage) UpdateItem(ctx context.Context, ownerID, key string, fn port.UpdateFunc) error {
	return m.Called(ctx, ownerID, key, fn).Error(0)
}

func (m *mockStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var testProducts = []catalog.Product{
	{Slug: "forest", NameRu: "Лесная медитация", NameEn: "Forest Meditation", Price: decimal.NewFromInt(1990)},
	{Slug: "dawn", NameRu: "Горный рассвет", Price: decimal.NewFromInt(2490)},
}

type fixture struct {
	service *shop.Service
	storage port.Storage
	center  *notify.Center
}

func newFixture(t *testing.T, storage port.Storage) fixture {
	t.Helper()

	products, err := catalog.New(testProducts)
	require.NoError(t, err)

	texts, err := i18n.NewCatalog()
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	center := notify.NewCenter(notify.Config{MaxOwners: 16, TrayCapacity: 5, TrayTTL: time.Hour},
		zap.NewNop(), notify.WithClock(func() time.Time { return now }))

	logger := zap.NewNop()
	service := shop.NewService(
		cart.NewStore(storage, logger),
		preference.NewStore(storage, logger),
		products,
		center,
		texts,
		logger,
	)

	return fixture{service: service, storage: storage, center: center}
}

func TestAddProduct(t *testing.T) {
	f := newFixture(t, repository.NewMemoryStorage())
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	item, err := f.service.AddProduct(ctx, ownerID, "forest")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Лесная медитация", item.Name.Ru)

	state, err := f.service.State(ctx, ownerID)
	require.NoError(t, err)

	require.Len(t, state.Cart.Items, 1)
	assert.Equal(t, item.ID, state.Cart.Items[0].ID)
	assert.Equal(t, domain.LocaleRu, state.Locale)

	require.Len(t, state.Notifications, 1)
	note := state.Notifications[0]
	assert.Equal(t, "Лесная медитация добавлен в корзину!", note.Message)
	assert.Equal(t, notify.KindSuccess, note.Kind)
	assert.Equal(t, shop.CartNotificationClass, note.Class)
	assert.Equal(t, notify.PhaseVisible, note.Phase)
}

func TestAddProductUsesActiveLocaleName(t *testing.T) {
	f := newFixture(t, repository.NewMemoryStorage())
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	require.NoError(t, f.service.SetLocale(ctx, ownerID, domain.LocaleEn))

	_, err := f.service.AddProduct(ctx, ownerID, "forest")
	require.NoError(t, err)

	active := f.center.Active(ownerID)
	require.Len(t, active, 1)
	assert.Equal(t, "Forest Meditation добавлен в корзину!", active[0].Message)
}

func TestAddProductSupersedesCartNotification(t *testing.T) {
	f := newFixture(t, repository.NewMemoryStorage())
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	_, err := f.service.AddProduct(ctx, ownerID, "forest")
	require.NoError(t, err)
	_, err = f.service.AddProduct(ctx, ownerID, "dawn")
	require.NoError(t, err)

	active := f.center.Active(ownerID)
	require.Len(t, active, 1)
	assert.Equal(t, "Горный рассвет добавлен в корзину!", active[0].Message)
}

func TestAddUnknownProduct(t *testing.T) {
	f := newFixture(t, repository.NewMemoryStorage())
	ownerID := gofakeit.UUID()

	_, err := f.service.AddProduct(t.Context(), ownerID, "nope")
	require.ErrorIs(t, err, shop.ErrProductNotFound)

	assert.Empty(t, f.center.Active(ownerID))
}

func TestRemoveItem(t *testing.T) {
	f := newFixture(t, repository.NewMemoryStorage())
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	first, err := f.service.AddProduct(ctx, ownerID, "forest")
	require.NoError(t, err)
	second, err := f.service.AddProduct(ctx, ownerID, "dawn")
	require.NoError(t, err)

	removed, err := f.service.RemoveItem(ctx, ownerID, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	state, err := f.service.State(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, state.Cart.Items, 1)
	assert.Equal(t, second.ID, state.Cart.Items[0].ID)

	require.Len(t, state.Notifications, 1)
	assert.Equal(t, "Лесная медитация удален из корзины", state.Notifications[0].Message)
	assert.Equal(t, notify.KindError, state.Notifications[0].Kind)

	// the same id again is a silent no-op
	removed, err = f.service.RemoveItem(ctx, ownerID, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, f.center.Active(ownerID), 1)
}

func TestRemoveAt(t *testing.T) {
	f := newFixture(t, repository.NewMemoryStorage())
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	_, err := f.service.AddProduct(ctx, ownerID, "forest")
	require.NoError(t, err)

	for _, position := range []int{-1, 1} {
		removed, err := f.service.RemoveAt(ctx, ownerID, position)
		require.NoError(t, err)
		assert.False(t, removed, position)
	}

	removed, err := f.service.RemoveAt(ctx, ownerID, 0)
	require.NoError(t, err)
	assert.True(t, removed)

	state, err := f.service.State(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, state.Cart.Items)
}

func TestCheckoutEmptyCartDoesNotWrite(t *testing.T) {
	storage := &mockStorage{}
	f := newFixture(t, storage)
	ownerID := gofakeit.UUID()

	storage.On("GetItem", mock.Anything, ownerID, cart.Key).Return("[]", true, nil)

	done, err := f.service.Checkout(t.Context(), ownerID)
	require.NoError(t, err)
	assert.False(t, done)

	storage.AssertExpectations(t)
	storage.AssertNotCalled(t, "SetItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	active := f.center.Active(ownerID)
	require.Len(t, active, 1)
	assert.Equal(t, "Корзина пуста!", active[0].Message)
	assert.Equal(t, notify.KindError, active[0].Kind)
}

func TestCheckoutClearsCart(t *testing.T) {
	storage := &mockStorage{}
	f := newFixture(t, storage)
	ownerID := gofakeit.UUID()

	storage.On("GetItem", mock.Anything, ownerID, cart.Key).
		Return(`[{"productName":"Лесная медитация","price":1990,"id":"a"}]`, true, nil)
	storage.On("SetItem", mock.Anything, ownerID, cart.Key, "[]").Return(nil).Once()

	done, err := f.service.Checkout(t.Context(), ownerID)
	require.NoError(t, err)
	assert.True(t, done)

	storage.AssertExpectations(t)

	active := f.center.Active(ownerID)
	require.Len(t, active, 1)
	assert.Equal(t, "Заказ оформлен! Спасибо за покупку!", active[0].Message)
	assert.Equal(t, notify.KindSuccess, active[0].Kind)
}

func TestCheckoutStorageFailure(t *testing.T) {
	storage := &mockStorage{}
	f := newFixture(t, storage)
	ownerID := gofakeit.UUID()
	errDown := errors.New("storage is down")

	storage.On("GetItem", mock.Anything, ownerID, cart.Key).Return("", false, errDown)

	_, err := f.service.Checkout(t.Context(), ownerID)
	require.ErrorIs(t, err, errDown)

	assert.Empty(t, f.center.Active(ownerID))
}

func TestToggleLocale(t *testing.T) {
	f := newFixture(t, repository.NewMemoryStorage())
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	_, err := f.service.AddProduct(ctx, ownerID, "forest")
	require.NoError(t, err)

	locale, err := f.service.ToggleLocale(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleEn, locale)

	locale, err = f.service.ToggleLocale(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleRu, locale)

	// switching locale never touches the cart
	state, err := f.service.State(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, state.Cart.Items, 1)
}

func TestAskQuestion(t *testing.T) {
	f := newFixture(t, repository.NewMemoryStorage())
	ownerID := gofakeit.UUID()

	require.NoError(t, f.service.AskQuestion(t.Context(), ownerID))

	active := f.center.Active(ownerID)
	require.Len(t, active, 1)
	assert.Equal(t, "Ваш вопрос отправлен! Мы ответим вам в течение 24 часов.", active[0].Message)
	assert.Equal(t, notify.KindSuccess, active[0].Kind)
	assert.Empty(t, active[0].Class)

	require.EqualError(t, f.service.AskQuestion(t.Context(), ""), "ownerID is empty")
}
