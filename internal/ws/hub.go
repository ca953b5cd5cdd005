package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/damoang/rokn-storefront/internal/plugin"
)

const redisPubSubChannel = "storefront:push"

// 이벤트 종류
const (
	EventNotification = "notification"
	EventAdvisor      = "advisor"
)

// Event WebSocket으로 보내는 실시간 이벤트
type Event struct {
	Type    string      `json:"type"`    // "notification", "advisor"
	Payload interface{} `json:"payload"` // 이벤트별 데이터
}

// Hub 세션별 WebSocket 클라이언트 관리 및 전송
type Hub struct {
	// 세션 ID별 연결
	clients map[string]map[*Client]bool

	broadcast chan *targetedEvent

	mu          sync.RWMutex
	redisClient *redis.Client
	instanceID  string
	logger      plugin.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	started     atomic.Bool
	stopped     chan struct{}
}

type targetedEvent struct {
	SessionID string
	Event     *Event
}

// NewHub 생성자. redisClient가 있으면 여러 인스턴스 사이에 이벤트를 중계한다.
func NewHub(redisClient *redis.Client, logger plugin.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		broadcast:   make(chan *targetedEvent, 256),
		redisClient: redisClient,
		instanceID:  uuid.NewString(),
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		stopped:     make(chan struct{}),
	}
}

// Register 클라이언트 등록. 종료된 허브는 연결을 바로 닫는다.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctx.Err() != nil {
		close(client.send)
		return
	}
	if h.clients[client.sessionID] == nil {
		h.clients[client.sessionID] = make(map[*Client]bool)
	}
	h.clients[client.sessionID][client] = true
}

// unregister 클라이언트 해제 (연결 종료 시)
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.sessionID)
	}
}

// ClientCount 세션에 연결된 클라이언트 수
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Run 전송 루프. Stop 시 모든 연결을 닫고 반환한다.
func (h *Hub) Run() {
	if !h.started.CompareAndSwap(false, true) {
		return
	}
	defer close(h.stopped)
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case msg := <-h.broadcast:
			h.deliver(msg)

		case <-h.ctx.Done():
			h.mu.Lock()
			for _, clients := range h.clients {
				for client := range clients {
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) deliver(msg *targetedEvent) {
	data, err := json.Marshal(msg.Event)
	if err != nil {
		h.logger.Warn("push event marshal failed (%s): %v", msg.Event.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[msg.SessionID] {
		select {
		case client.send <- data:
		default:
			// 밀린 클라이언트는 끊는다
			h.removeLocked(client)
		}
	}
}

// SendToSession 세션에 이벤트 전송 (로컬 + Redis 발행).
// 호출자를 막지 않으며 큐가 가득 차면 버린다.
func (h *Hub) SendToSession(sessionID string, event *Event) {
	if h.ctx.Err() != nil {
		return
	}
	h.enqueue(&targetedEvent{SessionID: sessionID, Event: event})

	if h.redisClient != nil {
		data, err := json.Marshal(&redisMessage{Origin: h.instanceID, SessionID: sessionID, Event: event})
		if err == nil {
			if err := h.redisClient.Publish(h.ctx, redisPubSubChannel, data).Err(); err != nil {
				h.logger.Warn("push publish failed: %v", err)
			}
		}
	}
}

func (h *Hub) enqueue(msg *targetedEvent) {
	select {
	case h.broadcast <- msg:
	case <-h.ctx.Done():
	default:
		h.logger.Warn("push queue full, dropped %s event for %s", msg.Event.Type, msg.SessionID)
	}
}

type redisMessage struct {
	Origin    string `json:"origin"`
	SessionID string `json:"session_id"`
	Event     *Event `json:"event"`
}

// subscribeRedis 다른 인스턴스의 이벤트 수신
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rm redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &rm); err != nil {
				continue
			}
			// 자기 인스턴스가 보낸 이벤트는 이미 로컬로 전달됨
			if rm.Origin == h.instanceID || rm.Event == nil {
				continue
			}
			h.enqueue(&targetedEvent{SessionID: rm.SessionID, Event: rm.Event})
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop 허브 종료. Run이 끝날 때까지 기다린다 (여러 번 호출해도 안전).
func (h *Hub) Stop() {
	h.cancel()
	if h.started.Load() {
		<-h.stopped
	}
}
