package service

import (
	"sync"
	"time"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/ws"
	"github.com/damoang/rokn-storefront/pkg/i18n"
)

// 이벤트 토픽
const (
	EventSource          = "storefront"
	TopicLineAdded       = "cart.line_added"
	TopicFavoriteToggled = "favorites.toggled"
	TopicOrderExported   = "order.exported"
)

// MaxNotifications 클라이언트별 보관하는 최대 알림 수
const MaxNotifications = 20

// Pusher 세션에 실시간 이벤트를 보낸다
type Pusher interface {
	SendToSession(sessionID string, event *ws.Event)
}

// NotificationCenter 이벤트를 구독해 클라이언트별 토스트 알림을 보관하고,
// pusher가 있으면 연결된 클라이언트에 바로 보낸다
type NotificationCenter struct {
	mu       sync.Mutex
	queues   map[string][]domain.Notification
	messages *i18n.Bundle
	pusher   Pusher
	now      func() time.Time
}

// NewNotificationCenter 생성자
func NewNotificationCenter(messages *i18n.Bundle) *NotificationCenter {
	return &NotificationCenter{
		queues:   make(map[string][]domain.Notification),
		messages: messages,
		now:      time.Now,
	}
}

// SetPusher 실시간 전송 경로 설정
func (n *NotificationCenter) SetPusher(p Pusher) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pusher = p
}

// Subscribe 이벤트 버스에 구독 등록
func (n *NotificationCenter) Subscribe(bus *plugin.EventBus, subscriber string) {
	bus.Subscribe(subscriber, TopicLineAdded, n.handle)
	bus.Subscribe(subscriber, TopicFavoriteToggled, n.handle)
	bus.Subscribe(subscriber, TopicOrderExported, n.handle)
}

func (n *NotificationCenter) handle(e plugin.Event) {
	clientID := e.String("client_id")
	if clientID == "" {
		return
	}
	locale := i18n.Locale(e.String("locale"))

	var msg string
	switch e.Topic {
	case TopicLineAdded:
		msg = n.messages.T(locale, "cart.line_added", e.String("name"))
	case TopicFavoriteToggled:
		key := "favorites.removed"
		if e.Bool("added") {
			key = "favorites.added"
		}
		msg = n.messages.T(locale, key, e.String("name"))
	case TopicOrderExported:
		msg = n.messages.T(locale, "order.exported", e.Int64("points"))
	default:
		return
	}
	n.push(clientID, domain.Notification{Topic: e.Topic, Message: msg, CreatedAt: n.now()})
}

func (n *NotificationCenter) push(clientID string, note domain.Notification) {
	n.mu.Lock()
	q := append(n.queues[clientID], note)
	if len(q) > MaxNotifications {
		q = q[len(q)-MaxNotifications:]
	}
	n.queues[clientID] = q
	pusher := n.pusher
	n.mu.Unlock()

	if pusher != nil {
		pusher.SendToSession(clientID, &ws.Event{Type: ws.EventNotification, Payload: note})
	}
}

// Drain 보관 중인 알림을 오래된 순으로 반환하고 비운다
func (n *NotificationCenter) Drain(clientID string) []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	q := n.queues[clientID]
	delete(n.queues, clientID)
	if q == nil {
		return []domain.Notification{}
	}
	return q
}

// Forget 클라이언트 알림 폐기 (세션 종료 시)
func (n *NotificationCenter) Forget(clientID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.queues, clientID)
}
