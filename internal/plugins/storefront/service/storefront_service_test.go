package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/repository"
	"github.com/damoang/rokn-storefront/pkg/i18n"
)

type storefrontFixture struct {
	catalog       CatalogService
	sessions      *SessionManager
	persister     *Persister
	store         *repository.MemoryStore
	bus           *plugin.EventBus
	notifications *NotificationCenter
	svc           *StorefrontService
	pricing       Pricing
	events        []plugin.Event
}

func newStorefrontFixture(t *testing.T) *storefrontFixture {
	t.Helper()
	f := &storefrontFixture{}
	f.catalog = newTestCatalog(t)
	_, err := f.catalog.Seed(context.Background())
	require.NoError(t, err)

	f.store = repository.NewMemoryStore()
	f.sessions, f.persister = newTestSessions(t, f.store)
	f.bus = plugin.NewEventBus(plugin.NewNopLogger())
	f.notifications = NewNotificationCenter(i18n.NewDefaultBundle(i18n.LocaleAr))
	f.notifications.Subscribe(f.bus, "notifications")
	for _, topic := range []string{TopicLineAdded, TopicFavoriteToggled, TopicOrderExported} {
		f.bus.Subscribe("recorder", topic, func(e plugin.Event) { f.events = append(f.events, e) })
	}
	f.pricing = Pricing{DeliveryFee: decimal.NewFromInt(15), PointsDivisor: 10, Currency: "SAR"}
	f.svc = NewStorefrontService(f.catalog, f.sessions, f.pricing, f.bus, f.notifications)
	return f
}

func (f *storefrontFixture) topics() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Topic
	}
	return out
}

func TestStorefrontService_AddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("새 라인만 알림 발행", func(t *testing.T) {
		f := newStorefrontFixture(t)

		res, err := f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "1"})
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, "1-كيس", res.Line.LineID)

		res, err = f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "1", Unit: "primary"})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, 2, res.Line.Quantity)

		res, err = f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "1", Unit: "secondary"})
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, "1-كرتون", res.Line.LineID)

		assert.Equal(t, []string{TopicLineAdded, TopicLineAdded}, f.topics())
		notes := f.svc.Notifications("c")
		require.Len(t, notes, 2)
		assert.Equal(t, "تمت إضافة برجر بقري أمريكانا للسلة", notes[0].Message)
	})

	t.Run("보조 단위 없는 상품", func(t *testing.T) {
		f := newStorefrontFixture(t)
		_, err := f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "15", Unit: "secondary"})
		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
		assert.Empty(t, f.svc.Cart(ctx, "c").Lines)
		assert.Empty(t, f.events)
	})

	t.Run("알 수 없는 단위", func(t *testing.T) {
		f := newStorefrontFixture(t)
		_, err := f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "1", Unit: "pallet"})
		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
	})

	t.Run("없는 상품", func(t *testing.T) {
		f := newStorefrontFixture(t)
		_, err := f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "nope"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestStorefrontService_CartView(t *testing.T) {
	ctx := context.Background()
	f := newStorefrontFixture(t)

	_, err := f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "1"})
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "1", Unit: "secondary"})
	require.NoError(t, err)

	view := f.svc.ChangeQuantity(ctx, "c", "1-كيس", 1)
	require.Len(t, view.Lines, 2)
	// 40.5*2 + 250 = 331, +15 = 346 → 34 포인트
	assert.True(t, view.Totals.Subtotal.Equal(decimal.RequireFromString("331")))
	assert.True(t, view.Totals.GrandTotal.Equal(decimal.RequireFromString("346")))
	assert.Equal(t, int64(34), view.PointsToEarn)
	assert.Equal(t, 3, view.Totals.ItemCount)

	// 없는 라인은 변화 없음
	same := f.svc.ChangeQuantity(ctx, "c", "missing", 5)
	assert.Len(t, same.Lines, 2)
	assert.True(t, same.Totals.GrandTotal.Equal(view.Totals.GrandTotal))
	same = f.svc.RemoveLine(ctx, "c", "missing")
	assert.Equal(t, 3, same.Totals.ItemCount)

	view = f.svc.ChangeQuantity(ctx, "c", "1-كرتون", -1)
	require.Len(t, view.Lines, 1)

	view = f.svc.RemoveLine(ctx, "c", "1-كيس")
	assert.Empty(t, view.Lines)
	assert.True(t, view.Totals.GrandTotal.Equal(decimal.NewFromInt(15)))
	assert.Zero(t, view.PointsToEarn)
}

func TestStorefrontService_QuantityFor(t *testing.T) {
	ctx := context.Background()
	f := newStorefrontFixture(t)

	_, err := f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "1"})
	require.NoError(t, err)

	q, err := f.svc.QuantityFor(ctx, "c", "1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, q)

	q, err = f.svc.QuantityFor(ctx, "c", "1", "secondary")
	require.NoError(t, err)
	assert.Zero(t, q)

	// 카탈로그에서 삭제되어도 라인은 남는다
	require.NoError(t, f.catalog.Delete(ctx, "1"))
	q, err = f.svc.QuantityFor(ctx, "c", "1", "primary")
	require.NoError(t, err)
	assert.Equal(t, 1, q)
	assert.Equal(t, "برجر بقري أمريكانا", f.svc.Cart(ctx, "c").Lines[0].Snapshot.Name)

	_, err = f.svc.QuantityFor(ctx, "c", "1", "bulk")
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestStorefrontService_Favorites(t *testing.T) {
	ctx := context.Background()
	f := newStorefrontFixture(t)

	added, err := f.svc.ToggleFavorite(ctx, "c", "15")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = f.svc.ToggleFavorite(ctx, "c", "1")
	require.NoError(t, err)
	assert.True(t, added)

	// 카탈로그 순서
	favs, err := f.svc.Favorites(ctx, "c")
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "1", favs[0].ID)
	assert.Equal(t, "15", favs[1].ID)
	assert.True(t, favs[0].IsFavorite)

	list, err := f.svc.ListProducts(ctx, "c", domain.ProductFilter{Category: "زيوت وسمن"})
	require.NoError(t, err)
	for _, p := range list {
		assert.Equal(t, p.ID == "15", p.IsFavorite, p.ID)
	}

	// 삭제된 상품은 목록에서 사라지지만 해제는 가능하다
	require.NoError(t, f.catalog.Delete(ctx, "15"))
	favs, err = f.svc.Favorites(ctx, "c")
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	added, err = f.svc.ToggleFavorite(ctx, "c", "15")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = f.svc.ToggleFavorite(ctx, "c", "15")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Equal(t, []string{TopicFavoriteToggled, TopicFavoriteToggled, TopicFavoriteToggled}, f.topics())
	assert.True(t, f.events[0].Bool("added"))
	assert.False(t, f.events[2].Bool("added"))

	drain(t, f.persister)
	raw, ok, err := f.store.Get(ctx, "c:favorites")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["1"]`, raw)
}

func TestStorefrontService_SessionSettings(t *testing.T) {
	ctx := context.Background()
	f := newStorefrontFixture(t)

	view, err := f.svc.SetTheme(ctx, "c", domain.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, view.Theme)

	_, err = f.svc.SetTheme(ctx, "c", "sepia")
	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
	assert.Equal(t, domain.ThemeDark, f.svc.SessionView(ctx, "c").Theme)

	_, err = f.svc.AddToCart(ctx, "c", domain.AddToCartRequest{ProductID: "2"})
	require.NoError(t, err)
	drain(t, f.persister)
	f.svc.EndSession("c")
	assert.Empty(t, f.svc.Notifications("c"))
	assert.Zero(t, f.svc.SessionView(ctx, "c").ItemCount)
	assert.Equal(t, domain.ThemeDark, f.svc.SessionView(ctx, "c").Theme)
}
