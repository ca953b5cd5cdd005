package plugin

import (
	"sync"
	"time"
)

// Event 도메인 이벤트
type Event struct {
	Topic     string                 `json:"topic"`
	Source    string                 `json:"source"` // 발행 모듈
	Payload   map[string]interface{} `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

// String payload 문자열 값 (없으면 "")
func (e Event) String(key string) string {
	if v, ok := e.Payload[key].(string); ok {
		return v
	}
	return ""
}

// Int64 payload 정수 값 (없으면 0)
func (e Event) Int64(key string) int64 {
	switch v := e.Payload[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Bool payload 불리언 값
func (e Event) Bool(key string) bool {
	v, _ := e.Payload[key].(bool)
	return v
}

// EventHandler 이벤트 핸들러 함수
type EventHandler func(event Event)

type subscription struct {
	subscriber string
	handler    EventHandler
}

// EventBus 모듈 간 이벤트 발행/구독
type EventBus struct {
	subscribers map[string][]subscription // topic -> handlers
	mu          sync.RWMutex
	logger      Logger
	now         func() time.Time
}

// NewEventBus 생성자
func NewEventBus(logger Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string][]subscription),
		logger:      logger,
		now:         time.Now,
	}
}

// Subscribe 토픽 구독
func (eb *EventBus) Subscribe(subscriber, topic string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[topic] = append(eb.subscribers[topic], subscription{
		subscriber: subscriber,
		handler:    handler,
	})
	eb.logger.Debug("%s subscribed to topic: %s", subscriber, topic)
}

// Unsubscribe 구독자의 모든 구독 해제
func (eb *EventBus) Unsubscribe(subscriber string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	for topic, subs := range eb.subscribers {
		remaining := subs[:0:0]
		for _, s := range subs {
			if s.subscriber != subscriber {
				remaining = append(remaining, s)
			}
		}
		if len(remaining) == 0 {
			delete(eb.subscribers, topic)
		} else {
			eb.subscribers[topic] = remaining
		}
	}
}

// Publish 이벤트 발행 (동기: 모든 핸들러를 등록 순서대로 실행, 패닉은 격리)
func (eb *EventBus) Publish(source, topic string, payload map[string]interface{}) {
	eb.mu.RLock()
	subs := make([]subscription, len(eb.subscribers[topic]))
	copy(subs, eb.subscribers[topic])
	eb.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	event := Event{
		Topic:     topic,
		Source:    source,
		Payload:   payload,
		Timestamp: eb.now(),
	}

	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					eb.logger.Error("Event handler panicked [%s/%s → %s]: %v", source, topic, s.subscriber, r)
				}
			}()
			s.handler(event)
		}()
	}
}

// Subscriptions 토픽별 구독자 목록
func (eb *EventBus) Subscriptions() map[string][]string {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	result := make(map[string][]string)
	for topic, subs := range eb.subscribers {
		for _, s := range subs {
			result[topic] = append(result[topic], s.subscriber)
		}
	}
	return result
}
