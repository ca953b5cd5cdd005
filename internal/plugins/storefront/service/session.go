package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/repository"
	"github.com/damoang/rokn-storefront/pkg/i18n"
)

// ErrPersistenceRead 저장된 값을 해석할 수 없음 (기본값으로 복구됨)
var ErrPersistenceRead = errors.New("persisted value unreadable")

// 영속화 키 접미사
const (
	keyFavorites = "favorites"
	keyPoints    = "points"
	keyTheme     = "theme"
)

func storeKey(clientID, name string) string {
	return clientID + ":" + name
}

// Session 클라이언트 한 명의 상태 컨테이너.
// 장바구니는 메모리에만 있고, 즐겨찾기/포인트/테마는 KeyValueStore에 비동기로 저장된다.
// 모든 의도(intent)는 세션 뮤텍스로 직렬화되어 요청 순서대로 적용된다.
type Session struct {
	mu        sync.Mutex
	clientID  string
	cart      *Cart
	favorites *Favorites
	points    int64
	theme     domain.Theme
	locale    i18n.Locale
	advisor   *AdvisorTracker
	lastSeen  time.Time
	persister *Persister
}

// ClientID 세션 소유 클라이언트 ID
func (s *Session) ClientID() string {
	return s.clientID
}

// ============================================
// 장바구니
// ============================================

// AddToCart 장바구니 추가. created는 새 라인이 생겼는지 여부.
func (s *Session) AddToCart(product *domain.Product, selection domain.UnitSelection) (domain.CartLine, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Add(product, selection)
}

// ChangeQuantity 수량 증감 (0 이하이면 제거, 없는 라인은 no-op)
func (s *Session) ChangeQuantity(lineID string, delta int) *domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ChangeQuantity(lineID, delta)
}

// RemoveLine 라인 제거 (없으면 no-op)
func (s *Session) RemoveLine(lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Remove(lineID)
}

// QuantityFor 상품/단위 현재 수량
func (s *Session) QuantityFor(product *domain.Product, selection domain.UnitSelection) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.QuantityFor(product, selection)
}

// Lines 장바구니 라인 복사본
func (s *Session) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Checkout 세션 잠금 상태에서 export를 실행한다.
// 장바구니가 비어 있으면 export를 호출하지 않는다.
// export 성공 시에만 장바구니를 비우고 포인트를 적립한다.
func (s *Session) Checkout(export func(lines []domain.CartLine) (int64, error)) (awarded, balance int64, exported bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return 0, s.points, false, nil
	}

	awarded, err = export(s.cart.Lines())
	if err != nil {
		return 0, s.points, false, err
	}

	s.cart.Clear()
	s.points += awarded
	s.persist(keyPoints, strconv.FormatInt(s.points, 10))
	return awarded, s.points, true, nil
}

// ============================================
// 즐겨찾기
// ============================================

// ToggleFavorite 즐겨찾기 토글 후 포함 여부 반환
func (s *Session) ToggleFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := s.favorites.Toggle(productID)
	s.persistFavorites()
	return in
}

// IsFavorite 즐겨찾기 여부
func (s *Session) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(productID)
}

// FavoriteProducts 카탈로그와 라이브 조인한 즐겨찾기 목록
func (s *Session) FavoriteProducts(catalog []domain.Product) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.List(catalog)
}

// FavoriteIDs 즐겨찾기 ID 목록
func (s *Session) FavoriteIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.IDs()
}

// ============================================
// 포인트 / 테마 / 로케일
// ============================================

// Points 포인트 잔액
func (s *Session) Points() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points
}

// Theme 현재 테마
func (s *Session) Theme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme 테마 변경 (지원하지 않는 값은 무시하고 false)
func (s *Session) SetTheme(theme domain.Theme) bool {
	if !theme.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.persist(keyTheme, string(theme))
	return true
}

// Locale 세션 로케일
func (s *Session) Locale() i18n.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// SetLocale 로케일 변경 (메모리 전용)
func (s *Session) SetLocale(l i18n.Locale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = l
}

// View 세션 요약
func (s *Session) View() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SessionView{
		ClientID:      s.clientID,
		PointsBalance: s.points,
		Theme:         s.theme,
		Locale:        string(s.locale),
		ItemCount:     s.cart.ItemCount(),
		FavoriteCount: s.favorites.Len(),
	}
}

// ============================================
// 어드바이저
// ============================================

// BeginAdvice 사이트별 새 요청 시작
func (s *Session) BeginAdvice(site domain.AdvisorSite, subject string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advisor.Begin(site, subject)
}

// CompleteAdvice 최신 요청일 때만 결과 반영
func (s *Session) CompleteAdvice(site domain.AdvisorSite, seq uint64, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advisor.Complete(site, seq, content)
}

// AdviceState 사이트 상태
func (s *Session) AdviceState(site domain.AdvisorSite) domain.SiteState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advisor.State(site)
}

// ============================================
// 내부
// ============================================

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) persistFavorites() {
	data, _ := json.Marshal(s.favorites.IDs())
	s.persist(keyFavorites, string(data))
}

func (s *Session) persist(name, value string) {
	if s.persister == nil {
		return
	}
	s.persister.Enqueue(storeKey(s.clientID, name), value)
}

// ============================================
// SessionManager
// ============================================

// SessionManager 클라이언트 ID별 세션 관리
type SessionManager struct {
	mu            sync.Mutex
	sessions      map[string]*Session
	store         repository.KeyValueStore
	persister     *Persister
	logger        plugin.Logger
	greeting      func(l i18n.Locale) string
	defaultLocale i18n.Locale
	now           func() time.Time
}

// NewSessionManager 생성자. greeting은 로케일별 채팅 첫 인사말.
func NewSessionManager(store repository.KeyValueStore, persister *Persister, logger plugin.Logger, defaultLocale i18n.Locale, greeting func(l i18n.Locale) string) *SessionManager {
	if greeting == nil {
		greeting = func(i18n.Locale) string { return "" }
	}
	return &SessionManager{
		sessions:      make(map[string]*Session),
		store:         store,
		persister:     persister,
		logger:        logger,
		greeting:      greeting,
		defaultLocale: defaultLocale,
		now:           time.Now,
	}
}

// Get 세션 조회. 없으면 저장소에서 즐겨찾기/포인트/테마를 읽어 새로 만든다.
func (m *SessionManager) Get(ctx context.Context, clientID string) *Session {
	m.mu.Lock()
	if s, ok := m.sessions[clientID]; ok {
		m.mu.Unlock()
		s.touch(m.now())
		return s
	}
	m.mu.Unlock()

	loaded := m.load(ctx, clientID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[clientID]; ok {
		s.touch(m.now())
		return s
	}
	m.sessions[clientID] = loaded
	activeSessions.Set(float64(len(m.sessions)))
	return loaded
}

// End 메모리 상태 폐기 (장바구니 소멸, 영속 값은 유지)
func (m *SessionManager) End(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, clientID)
	activeSessions.Set(float64(len(m.sessions)))
}

// Sweep idle보다 오래 사용되지 않은 세션 종료. 종료한 개수 반환.
func (m *SessionManager) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	activeSessions.Set(float64(len(m.sessions)))
	return n
}

// Count 메모리 세션 수
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) load(ctx context.Context, clientID string) *Session {
	s := &Session{
		clientID:  clientID,
		cart:      NewCart(),
		favorites: NewFavorites(),
		theme:     domain.ThemeLight,
		locale:    m.defaultLocale,
		advisor:   NewAdvisorTracker(m.greeting(m.defaultLocale)),
		lastSeen:  m.now(),
		persister: m.persister,
	}
	if m.store == nil {
		return s
	}

	if raw, ok := m.read(ctx, clientID, keyFavorites); ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			m.warnUnreadable(clientID, keyFavorites, err)
		} else {
			s.favorites = NewFavorites(ids...)
		}
	}

	if raw, ok := m.read(ctx, clientID, keyPoints); ok {
		points, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || points < 0 {
			m.warnUnreadable(clientID, keyPoints, fmt.Errorf("points %q", raw))
		} else {
			s.points = points
		}
	}

	if raw, ok := m.read(ctx, clientID, keyTheme); ok {
		theme := domain.Theme(strings.TrimSpace(raw))
		if theme.Valid() {
			s.theme = theme
		} else {
			m.warnUnreadable(clientID, keyTheme, fmt.Errorf("theme %q", raw))
		}
	}
	return s
}

func (m *SessionManager) read(ctx context.Context, clientID, name string) (string, bool) {
	raw, ok, err := m.store.Get(ctx, storeKey(clientID, name))
	if err != nil {
		m.logger.Warn("read %s for %s failed: %v", name, clientID, err)
		return "", false
	}
	return raw, ok
}

func (m *SessionManager) warnUnreadable(clientID, name string, cause error) {
	err := fmt.Errorf("%w: %s for %s: %v", ErrPersistenceRead, name, clientID, cause)
	m.logger.Warn("%v (using default)", err)
}
