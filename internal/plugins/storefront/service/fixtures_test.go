package service

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/ws"
)

// recordingPusher 보낸 실시간 이벤트를 기록
type recordingPusher struct {
	mu     sync.Mutex
	events map[string][]*ws.Event
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{events: make(map[string][]*ws.Event)}
}

func (p *recordingPusher) SendToSession(sessionID string, event *ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[sessionID] = append(p.events[sessionID], event)
}

func (p *recordingPusher) sent(sessionID string) []*ws.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*ws.Event(nil), p.events[sessionID]...)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intp(v int) *int { return &v }

// burger 기본 단위 할인 + 보조 단위가 있는 상품
func burger() *domain.Product {
	return &domain.Product{
		ID:              "1",
		Name:            "برجر بقري أمريكانا",
		Brand:           "أمريكانا",
		Category:        "لحوم",
		Price:           dec("45"),
		Unit:            "كيس",
		SecondaryUnit:   "كرتون",
		SecondaryPrice:  decimal.NewNullDecimal(dec("250")),
		DiscountPercent: intp(10),
	}
}

// oil 단일 단위, 할인 없음
func oil() *domain.Product {
	return &domain.Product{
		ID:       "15",
		Name:     "زيت قلي مازولا",
		Brand:    "مازولا",
		Category: "زيوت وسمن",
		Price:    dec("95"),
		Unit:     "جالون",
	}
}
