package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL 상수 정의
const (
	TTLProduct  = 10 * time.Minute // 단일 상품
	TTLProducts = 2 * time.Minute  // 상품 목록 (관리자 수정 시 무효화)
)

// 캐시 키 접두사
const (
	PrefixProduct  = "sf:product:"
	PrefixProducts = "sf:products:"
	PrefixPrefs    = "sf:prefs:"
)

// ErrMiss 캐시 미스
var ErrMiss = errors.New("cache miss")

// ErrUnavailable Redis 미연결
var ErrUnavailable = errors.New("redis not available")

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	// 기본 캐시 연산
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error

	// 유틸리티
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

// NewService 새로운 캐시 서비스 생성 (client가 nil이면 모든 쓰기는 무시됨)
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable Redis 연결 가능 여부
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping Redis 연결 테스트
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrUnavailable
	}
	return c.client.Ping(ctx).Err()
}

// Get 캐시에서 JSON 값 조회
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.raw(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set 캐시에 JSON 값 저장
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // Redis 없으면 무시
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetString 원본 문자열 조회
func (c *redisCache) GetString(ctx context.Context, key string) (string, error) {
	data, err := c.raw(ctx, key)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetString 원본 문자열 저장 (ttl 0이면 만료 없음)
func (c *redisCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.client == nil {
		return ErrUnavailable
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete 캐시 삭제
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// DeletePattern 패턴과 일치하는 키 삭제 (SCAN 사용)
func (c *redisCache) DeletePattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *redisCache) raw(ctx context.Context, key string) ([]byte, error) {
	if c.client == nil {
		return nil, ErrUnavailable
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return data, err
}
