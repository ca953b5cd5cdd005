package plugin

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Plugin 플러그인 인터페이스 - 모든 내장 기능 모듈이 구현해야 함
type Plugin interface {
	// Name 플러그인 이름 반환
	Name() string

	// Migrate DB 마이그레이션 실행 (테이블 생성/업데이트)
	Migrate(db *gorm.DB) error

	// Initialize 플러그인 초기화
	Initialize(ctx *PluginContext) error

	// RegisterRoutes 라우트 등록
	RegisterRoutes(router gin.IRouter)

	// Shutdown 플러그인 종료
	Shutdown() error
}

// PluginContext 플러그인에 전달되는 컨텍스트
type PluginContext struct {
	DB        *gorm.DB
	Redis     *redis.Client // nil이면 Redis 없이 동작
	Logger    Logger
	Events    *EventBus
	Scheduler *Scheduler
	BasePath  string
}

// Logger 플러그인용 로거 인터페이스
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// HealthCheckable 선택적 인터페이스 - 플러그인 상태 점검
type HealthCheckable interface {
	HealthCheck() error
}

// PluginHealth 플러그인 헬스 체크 결과
type PluginHealth struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // healthy, unhealthy
	Message string `json:"message,omitempty"`
}

// EventAware 선택적 인터페이스 - 이벤트 버스 구독
type EventAware interface {
	RegisterEvents(bus *EventBus)
}
