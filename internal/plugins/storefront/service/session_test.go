package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/repository"
	"github.com/damoang/rokn-storefront/pkg/i18n"
)

// failingStore 읽기/쓰기 실패를 흉내내는 저장소
type failingStore struct {
	getErr error
	setErr error
	mu     sync.Mutex
	sets   int
}

func (f *failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}

func (f *failingStore) Set(context.Context, string, string) error {
	f.mu.Lock()
	f.sets++
	f.mu.Unlock()
	return f.setErr
}

func newTestSessions(t *testing.T, store repository.KeyValueStore) (*SessionManager, *Persister) {
	t.Helper()
	logger := plugin.NewNopLogger()
	persister := NewPersister(store, logger)
	t.Cleanup(func() { _ = persister.Close(context.Background()) })
	return NewSessionManager(store, persister, logger, i18n.LocaleAr, func(i18n.Locale) string { return "هلا" }), persister
}

func drain(t *testing.T, p *Persister) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Drain(ctx))
}

func TestSessionManager_DefaultState(t *testing.T) {
	mgr, _ := newTestSessions(t, repository.NewMemoryStore())
	s := mgr.Get(context.Background(), "client-1")

	view := s.View()
	assert.Equal(t, "client-1", view.ClientID)
	assert.Zero(t, view.PointsBalance)
	assert.Zero(t, view.ItemCount)
	assert.Zero(t, view.FavoriteCount)
	assert.Equal(t, domain.ThemeLight, view.Theme)
	assert.Equal(t, "ar", view.Locale)
	assert.Equal(t, "هلا", s.AdviceState(domain.SiteChat).Transcript[0].Text)

	assert.Same(t, s, mgr.Get(context.Background(), "client-1"))
	assert.Equal(t, 1, mgr.Count())
}

func TestSessionManager_PersistAndRestore(t *testing.T) {
	store := repository.NewMemoryStore()
	mgr, persister := newTestSessions(t, store)
	ctx := context.Background()

	s := mgr.Get(ctx, "c")
	s.ToggleFavorite("1")
	s.ToggleFavorite("2")
	s.ToggleFavorite("1")
	assert.True(t, s.SetTheme(domain.ThemeDark))
	assert.False(t, s.SetTheme(domain.Theme("neon")))
	_, _, err := s.AddToCart(oil(), domain.UnitPrimary)
	require.NoError(t, err)
	drain(t, persister)

	raw, ok, err := store.Get(ctx, "c:favorites")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["2"]`, raw)

	// 세션 종료: 장바구니는 사라지고 영속 값은 유지
	mgr.End("c")
	assert.Zero(t, mgr.Count())

	restored := mgr.Get(ctx, "c")
	assert.NotSame(t, s, restored)
	assert.Empty(t, restored.Lines())
	assert.Equal(t, []string{"2"}, restored.FavoriteIDs())
	assert.Equal(t, domain.ThemeDark, restored.Theme())
}

func TestSessionManager_MalformedValuesFallBack(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "c:favorites", "{not json"))
	require.NoError(t, store.Set(ctx, "c:points", "many"))
	require.NoError(t, store.Set(ctx, "c:theme", "neon"))

	mgr, _ := newTestSessions(t, store)
	s := mgr.Get(ctx, "c")

	assert.Empty(t, s.FavoriteIDs())
	assert.Zero(t, s.Points())
	assert.Equal(t, domain.ThemeLight, s.Theme())
}

func TestSessionManager_ValidPointsRestored(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "c:points", " 42 "))

	mgr, _ := newTestSessions(t, store)
	assert.Equal(t, int64(42), mgr.Get(ctx, "c").Points())
}

func TestSessionManager_StoreErrors(t *testing.T) {
	store := &failingStore{getErr: errors.New("down"), setErr: errors.New("down")}
	mgr, persister := newTestSessions(t, store)

	s := mgr.Get(context.Background(), "c")
	assert.Empty(t, s.FavoriteIDs())

	// 쓰기 실패는 상태 변경을 막지 않는다
	assert.True(t, s.ToggleFavorite("1"))
	assert.True(t, s.IsFavorite("1"))
	drain(t, persister)
	assert.Equal(t, 1, store.sets)
}

func TestSessionManager_Sweep(t *testing.T) {
	mgr, _ := newTestSessions(t, repository.NewMemoryStore())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return now }

	mgr.Get(context.Background(), "old")
	now = now.Add(2 * time.Hour)
	mgr.Get(context.Background(), "fresh")

	assert.Equal(t, 1, mgr.Sweep(time.Hour))
	assert.Equal(t, 1, mgr.Count())
}

func TestSession_OrderedIntents(t *testing.T) {
	mgr, _ := newTestSessions(t, nil)
	s := mgr.Get(context.Background(), "c")

	line, _, err := s.AddToCart(oil(), domain.UnitPrimary)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ChangeQuantity(line.LineID, 1)
		}()
	}
	wg.Wait()

	// 모든 증가가 개별적으로 반영된다
	assert.Equal(t, 51, s.QuantityFor(oil(), domain.UnitPrimary))
}

func TestSession_Checkout(t *testing.T) {
	store := repository.NewMemoryStore()
	mgr, persister := newTestSessions(t, store)
	ctx := context.Background()
	s := mgr.Get(ctx, "c")

	t.Run("빈 장바구니는 export 호출 안 함", func(t *testing.T) {
		called := false
		_, _, exported, err := s.Checkout(func([]domain.CartLine) (int64, error) {
			called = true
			return 0, nil
		})
		require.NoError(t, err)
		assert.False(t, exported)
		assert.False(t, called)
	})

	_, _, err := s.AddToCart(oil(), domain.UnitPrimary)
	require.NoError(t, err)

	t.Run("export 실패 시 상태 유지", func(t *testing.T) {
		_, _, exported, err := s.Checkout(func([]domain.CartLine) (int64, error) {
			return 0, errors.New("boom")
		})
		assert.Error(t, err)
		assert.False(t, exported)
		assert.Len(t, s.Lines(), 1)
		assert.Zero(t, s.Points())
	})

	t.Run("성공 시 비우고 적립", func(t *testing.T) {
		awarded, balance, exported, err := s.Checkout(func(lines []domain.CartLine) (int64, error) {
			assert.Len(t, lines, 1)
			return 11, nil
		})
		require.NoError(t, err)
		assert.True(t, exported)
		assert.Equal(t, int64(11), awarded)
		assert.Equal(t, int64(11), balance)
		assert.Empty(t, s.Lines())

		drain(t, persister)
		raw, ok, err := store.Get(ctx, "c:points")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "11", raw)
	})
}
