package service

import (
	"context"
	"sync"
	"time"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/repository"
)

type kvWrite struct {
	key   string
	value string
}

// Persister 단일 워커가 순서대로 처리하는 fire-and-forget 쓰기 큐.
// Enqueue는 절대 블록되지 않으며 실패는 로그만 남긴다.
type Persister struct {
	store        repository.KeyValueStore
	logger       plugin.Logger
	writeTimeout time.Duration

	mu      sync.Mutex
	pending []kvWrite
	busy    bool
	closed  bool

	notify  chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

// NewPersister 워커를 시작한 Persister 생성
func NewPersister(store repository.KeyValueStore, logger plugin.Logger) *Persister {
	p := &Persister{
		store:        store,
		logger:       logger,
		writeTimeout: 3 * time.Second,
		notify:       make(chan struct{}, 1),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	go p.run()
	return p
}

// Enqueue 쓰기 예약 (종료 후 호출은 무시)
func (p *Persister) Enqueue(key, value string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Warn("persister closed, dropping write for %s", key)
		return
	}
	p.pending = append(p.pending, kvWrite{key: key, value: value})
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Drain 큐가 빌 때까지 대기
func (p *Persister) Drain(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		p.mu.Lock()
		idle := len(p.pending) == 0 && !p.busy
		p.mu.Unlock()
		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close 남은 쓰기를 처리한 뒤 워커 종료
func (p *Persister) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.done)
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Persister) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.notify:
			p.flush()
		case <-p.done:
			p.flush()
			return
		}
	}
}

func (p *Persister) flush() {
	for {
		p.mu.Lock()
		if len(p.pending) == 0 {
			p.busy = false
			p.mu.Unlock()
			return
		}
		w := p.pending[0]
		p.pending = p.pending[1:]
		p.busy = true
		p.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		if err := p.store.Set(ctx, w.key, w.value); err != nil {
			persistFailures.Inc()
			p.logger.Error("persist %s failed: %v", w.key, err)
		}
		cancel()
	}
}
