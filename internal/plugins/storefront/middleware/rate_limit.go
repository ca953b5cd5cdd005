package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/damoang/rokn-storefront/internal/common"
)

// RateLimitConfig 어드바이저 호출 제한 설정
type RateLimitConfig struct {
	RequestsPerMinute int           // 분당 요청 수
	WindowSize        time.Duration // 윈도우 크기
	KeyPrefix         string        // Redis 키 접두사
	Message           string        // 제한 초과 시 메시지
}

// DefaultRateLimitConfig 기본 설정
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 20,
		WindowSize:        time.Minute,
		KeyPrefix:         "sf:ratelimit:advisor:",
		Message:           "Too many advisor requests. Please try again later.",
	}
}

// KeyFunc 요청에서 제한 대상 키를 추출
type KeyFunc func(c *gin.Context) string

// slidingWindowScript 만료 요청 제거 후 한도 내에서만 기록 (원자적)
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
	local count = redis.call('ZCARD', key)

	if count < limit then
		redis.call('ZADD', key, now, now .. '-' .. math.random())
		redis.call('PEXPIRE', key, window + 1000)
		return {limit - count - 1, 1}
	end
	return {0, 0}
`)

// RateLimiter Redis 슬라이딩 윈도우 제한기.
// Redis가 없거나 오류면 프로세스 메모리 고정 윈도우로 대신 제한한다.
type RateLimiter struct {
	redis    *redis.Client
	config   *RateLimitConfig
	key      KeyFunc
	fallback *memoryLimiter
}

// NewRateLimiter 생성자. key가 nil이면 클라이언트 IP 기준.
func NewRateLimiter(redisClient *redis.Client, config *RateLimitConfig, key KeyFunc) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	if config.WindowSize <= 0 {
		config.WindowSize = time.Minute
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultRateLimitConfig().KeyPrefix
	}
	if config.Message == "" {
		config.Message = DefaultRateLimitConfig().Message
	}
	if key == nil {
		key = func(c *gin.Context) string { return c.ClientIP() }
	}
	return &RateLimiter{
		redis:    redisClient,
		config:   config,
		key:      key,
		fallback: newMemoryLimiter(),
	}
}

// Middleware Gin 미들웨어 반환
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.config.RequestsPerMinute <= 0 {
			c.Next()
			return
		}

		id := r.key(c)
		remaining, allowed, err := r.check(c.Request.Context(), id)
		if err != nil {
			remaining, allowed = r.fallback.check(id, r.config.RequestsPerMinute, r.config.WindowSize, time.Now())
		}

		resetAt := time.Now().Add(r.config.WindowSize).Unix()
		c.Header("X-RateLimit-Limit", strconv.Itoa(r.config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(r.config.WindowSize.Seconds())))
			common.ErrorResponse(c, http.StatusTooManyRequests, r.config.Message, nil)
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) check(ctx context.Context, id string) (int, bool, error) {
	if r.redis == nil {
		return 0, false, errNoRedis
	}
	res, err := slidingWindowScript.Run(ctx, r.redis, []string{r.config.KeyPrefix + id},
		time.Now().UnixMilli(),
		r.config.WindowSize.Milliseconds(),
		r.config.RequestsPerMinute,
	).Int64Slice()
	if err != nil {
		return 0, false, err
	}
	if len(res) < 2 {
		return 0, false, redis.Nil
	}
	return int(res[0]), res[1] == 1, nil
}

// Reset 특정 키의 제한 초기화
func (r *RateLimiter) Reset(ctx context.Context, id string) error {
	r.fallback.remove(id)
	if r.redis == nil {
		return nil
	}
	return r.redis.Del(ctx, r.config.KeyPrefix+id).Err()
}

var errNoRedis = errors.New("redis not configured")

// memoryLimiter Redis를 쓸 수 없을 때의 고정 윈도우 카운터
type memoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count   int
	resetAt time.Time
}

func newMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{buckets: make(map[string]*bucket)}
}

func (m *memoryLimiter) check(id string, limit int, window time.Duration, now time.Time) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[id]
	if !ok || now.After(b.resetAt) {
		m.buckets[id] = &bucket{count: 1, resetAt: now.Add(window)}
		m.prune(now)
		return limit - 1, true
	}

	if b.count >= limit {
		return 0, false
	}
	b.count++
	return limit - b.count, true
}

// prune 만료된 버킷 정리 (버킷이 많을 때만)
func (m *memoryLimiter) prune(now time.Time) {
	if len(m.buckets) < 1024 {
		return
	}
	for id, b := range m.buckets {
		if now.After(b.resetAt) {
			delete(m.buckets, id)
		}
	}
}

func (m *memoryLimiter) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets, id)
}
