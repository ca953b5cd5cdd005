package service

import (
	"context"
	"errors"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

// StorefrontService 카탈로그와 세션(장바구니, 즐겨찾기, 환경설정)을 묶은 손님용 서비스
type StorefrontService struct {
	catalog       CatalogService
	sessions      *SessionManager
	pricing       Pricing
	events        *plugin.EventBus
	notifications *NotificationCenter
}

// NewStorefrontService 생성자. events와 notifications는 nil 허용.
func NewStorefrontService(catalog CatalogService, sessions *SessionManager, pricing Pricing, events *plugin.EventBus, notifications *NotificationCenter) *StorefrontService {
	return &StorefrontService{
		catalog:       catalog,
		sessions:      sessions,
		pricing:       pricing,
		events:        events,
		notifications: notifications,
	}
}

// Session 클라이언트 세션
func (s *StorefrontService) Session(ctx context.Context, clientID string) *Session {
	return s.sessions.Get(ctx, clientID)
}

// ============================================
// 카탈로그 (즐겨찾기 표시 포함)
// ============================================

// ListProducts 필터 적용 목록
func (s *StorefrontService) ListProducts(ctx context.Context, clientID string, filter domain.ProductFilter) ([]domain.ProductResponse, error) {
	products, err := s.catalog.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sess := s.sessions.Get(ctx, clientID)
	out := make([]domain.ProductResponse, len(products))
	for i := range products {
		out[i] = products[i].ToResponse(sess.IsFavorite(products[i].ID))
	}
	return out, nil
}

// GetProduct 상품 단건
func (s *StorefrontService) GetProduct(ctx context.Context, clientID, productID string) (*domain.ProductResponse, error) {
	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := p.ToResponse(s.sessions.Get(ctx, clientID).IsFavorite(p.ID))
	return &resp, nil
}

// ============================================
// 장바구니
// ============================================

// Cart 장바구니 조회
func (s *StorefrontService) Cart(ctx context.Context, clientID string) domain.CartView {
	return s.pricing.View(s.sessions.Get(ctx, clientID).Lines())
}

// AddToCart 상품을 선택 단위로 1개 추가.
// 새 라인이 생긴 경우에만 알림 이벤트를 발행한다.
func (s *StorefrontService) AddToCart(ctx context.Context, clientID string, req domain.AddToCartRequest) (*domain.AddToCartResult, error) {
	selection, err := domain.ParseUnitSelection(req.Unit)
	if err != nil {
		cartLinesAdded.WithLabelValues("invalid").Inc()
		return nil, err
	}
	product, err := s.catalog.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Get(ctx, clientID)
	line, created, err := sess.AddToCart(product, selection)
	if err != nil {
		cartLinesAdded.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if created {
		cartLinesAdded.WithLabelValues("created").Inc()
		s.publish(TopicLineAdded, map[string]interface{}{
			"client_id":  clientID,
			"locale":     string(sess.Locale()),
			"product_id": product.ID,
			"line_id":    line.LineID,
			"name":       line.Snapshot.Name,
		})
	} else {
		cartLinesAdded.WithLabelValues("incremented").Inc()
	}
	return &domain.AddToCartResult{Line: line, Created: created}, nil
}

// ChangeQuantity 라인 수량 증감 후 장바구니 반환 (없는 라인은 변화 없음)
func (s *StorefrontService) ChangeQuantity(ctx context.Context, clientID, lineID string, delta int) domain.CartView {
	sess := s.sessions.Get(ctx, clientID)
	sess.ChangeQuantity(lineID, delta)
	return s.pricing.View(sess.Lines())
}

// RemoveLine 라인 제거 후 장바구니 반환 (없는 라인은 변화 없음)
func (s *StorefrontService) RemoveLine(ctx context.Context, clientID, lineID string) domain.CartView {
	sess := s.sessions.Get(ctx, clientID)
	sess.RemoveLine(lineID)
	return s.pricing.View(sess.Lines())
}

// QuantityFor 상품/단위의 현재 수량. 카탈로그에서 사라진 상품은 ID로 라인을 찾는다.
func (s *StorefrontService) QuantityFor(ctx context.Context, clientID, productID, unit string) (int, error) {
	selection, err := domain.ParseUnitSelection(unit)
	if err != nil {
		return 0, err
	}
	sess := s.sessions.Get(ctx, clientID)

	product, err := s.catalog.Get(ctx, productID)
	switch {
	case err == nil:
		return sess.QuantityFor(product, selection), nil
	case errors.Is(err, domain.ErrProductNotFound):
		for _, l := range sess.Lines() {
			if l.ProductID == productID && l.Selection == selection {
				return l.Quantity, nil
			}
		}
		return 0, nil
	default:
		return 0, err
	}
}

// ============================================
// 즐겨찾기
// ============================================

// Favorites 카탈로그와 조인한 즐겨찾기 목록 (카탈로그 순서)
func (s *StorefrontService) Favorites(ctx context.Context, clientID string) ([]domain.ProductResponse, error) {
	catalog, err := s.catalog.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}
	favs := s.sessions.Get(ctx, clientID).FavoriteProducts(catalog)
	out := make([]domain.ProductResponse, len(favs))
	for i := range favs {
		out[i] = favs[i].ToResponse(true)
	}
	return out, nil
}

// ToggleFavorite 즐겨찾기 토글. 카탈로그에 없는 상품은 해제만 가능하다.
func (s *StorefrontService) ToggleFavorite(ctx context.Context, clientID, productID string) (bool, error) {
	sess := s.sessions.Get(ctx, clientID)

	name := ""
	product, err := s.catalog.Get(ctx, productID)
	switch {
	case err == nil:
		name = product.Name
	case errors.Is(err, domain.ErrProductNotFound):
		if !sess.IsFavorite(productID) {
			return false, err
		}
	default:
		return false, err
	}

	added := sess.ToggleFavorite(productID)
	s.publish(TopicFavoriteToggled, map[string]interface{}{
		"client_id":  clientID,
		"locale":     string(sess.Locale()),
		"product_id": productID,
		"name":       name,
		"added":      added,
	})
	return added, nil
}

// ============================================
// 세션 / 알림
// ============================================

// SessionView 세션 요약
func (s *StorefrontService) SessionView(ctx context.Context, clientID string) domain.SessionView {
	return s.sessions.Get(ctx, clientID).View()
}

// SetTheme 테마 변경
func (s *StorefrontService) SetTheme(ctx context.Context, clientID string, theme domain.Theme) (domain.SessionView, error) {
	sess := s.sessions.Get(ctx, clientID)
	if !sess.SetTheme(theme) {
		return domain.SessionView{}, domain.ErrInvalidTheme
	}
	return sess.View(), nil
}

// Notifications 쌓인 토스트 알림을 꺼낸다
func (s *StorefrontService) Notifications(clientID string) []domain.Notification {
	if s.notifications == nil {
		return []domain.Notification{}
	}
	return s.notifications.Drain(clientID)
}

// EndSession 메모리 상태 폐기
func (s *StorefrontService) EndSession(clientID string) {
	s.sessions.End(clientID)
	if s.notifications != nil {
		s.notifications.Forget(clientID)
	}
}

func (s *StorefrontService) publish(topic string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(EventSource, topic, payload)
}
