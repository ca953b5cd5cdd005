package plugin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Manager 내장 플러그인 라이프사이클 관리 (등록 → 마이그레이션 → 초기화 → 라우트 → 종료)
type Manager struct {
	db        *gorm.DB
	redis     *redis.Client
	events    *EventBus
	scheduler *Scheduler
	logger    Logger
	plugins   []Plugin
	enabled   map[string]bool
	mu        sync.RWMutex
}

// NewManager 새 매니저 생성
func NewManager(db *gorm.DB, redisClient *redis.Client, logger Logger) *Manager {
	return &Manager{
		db:        db,
		redis:     redisClient,
		events:    NewEventBus(logger),
		scheduler: NewScheduler(logger, time.Second),
		logger:    logger,
		enabled:   make(map[string]bool),
	}
}

// Events 공유 이벤트 버스
func (m *Manager) Events() *EventBus {
	return m.events
}

// Scheduler 공유 주기 작업 실행기 (Start/Stop은 호출자 책임)
func (m *Manager) Scheduler() *Scheduler {
	return m.scheduler
}

// RegisterBuiltIn 내장 플러그인 등록
func (m *Manager) RegisterBuiltIn(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin %s already registered", p.Name())
		}
	}
	m.plugins = append(m.plugins, p)
	m.logger.Info("Registered built-in plugin: %s", p.Name())
	return nil
}

// EnableAll 등록 순서대로 마이그레이션 후 초기화
func (m *Manager) EnableAll(basePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.plugins {
		if m.enabled[p.Name()] {
			continue
		}
		if m.db != nil {
			if err := p.Migrate(m.db); err != nil {
				return fmt.Errorf("plugin %s migration failed: %w", p.Name(), err)
			}
		}
		ctx := &PluginContext{
			DB:        m.db,
			Redis:     m.redis,
			Logger:    NewLogger("plugin." + p.Name()),
			Events:    m.events,
			Scheduler: m.scheduler,
			BasePath:  basePath + "/" + p.Name(),
		}
		if err := p.Initialize(ctx); err != nil {
			return fmt.Errorf("plugin %s initialization failed: %w", p.Name(), err)
		}
		if aware, ok := p.(EventAware); ok {
			aware.RegisterEvents(m.events)
		}
		m.enabled[p.Name()] = true
		m.logger.Info("Enabled plugin: %s", p.Name())
	}
	return nil
}

// RegisterRoutes 활성화된 플러그인 라우트를 /{base}/{name} 그룹에 등록
func (m *Manager) RegisterRoutes(router gin.IRouter) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.plugins {
		if !m.enabled[p.Name()] {
			continue
		}
		p.RegisterRoutes(router.Group("/" + p.Name()))
	}
}

// ShutdownAll 역순으로 종료. 모든 플러그인을 시도하고 에러를 합쳐 반환한다.
func (m *Manager) ShutdownAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for i := len(m.plugins) - 1; i >= 0; i-- {
		p := m.plugins[i]
		if !m.enabled[p.Name()] {
			continue
		}
		if err := p.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("plugin %s shutdown: %w", p.Name(), err))
		}
		m.events.Unsubscribe(p.Name())
		m.scheduler.Unregister(p.Name())
		m.enabled[p.Name()] = false
	}
	return errors.Join(errs...)
}

// Health 플러그인별 상태
func (m *Manager) Health() []PluginHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]PluginHealth, 0, len(m.plugins))
	for _, p := range m.plugins {
		h := PluginHealth{Name: p.Name(), Status: "healthy"}
		if !m.enabled[p.Name()] {
			h.Status = "disabled"
		} else if checker, ok := p.(HealthCheckable); ok {
			if err := checker.HealthCheck(); err != nil {
				h.Status = "unhealthy"
				h.Message = err.Error()
			}
		}
		out = append(out, h)
	}
	return out
}
