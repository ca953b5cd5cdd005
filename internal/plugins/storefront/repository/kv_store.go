package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/damoang/rokn-storefront/pkg/cache"
)

// KeyValueStore 즐겨찾기/포인트/테마 영속화용 키-값 저장소.
// 키가 없으면 ok=false, 에러 없음.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// ============================================
// 메모리 구현 (테스트/Redis 미사용 개발 환경)
// ============================================

// MemoryStore 프로세스 메모리 키-값 저장소
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore 생성자
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get 값 조회
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set 값 저장
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// ============================================
// Redis 구현
// ============================================

// RedisKVStore Redis 키-값 저장소 (만료 없음)
type RedisKVStore struct {
	cache  cache.Service
	prefix string
}

// NewRedisKVStore 생성자
func NewRedisKVStore(c cache.Service) *RedisKVStore {
	return &RedisKVStore{cache: c, prefix: cache.PrefixPrefs}
}

// Get 값 조회
func (s *RedisKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.cache.GetString(ctx, s.prefix+key)
	if errors.Is(err, cache.ErrMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set 값 저장
func (s *RedisKVStore) Set(ctx context.Context, key, value string) error {
	return s.cache.SetString(ctx, s.prefix+key, value, 0)
}

// ============================================
// GORM 구현 (Redis 없이 영속화가 필요한 경우)
// ============================================

// KVEntry 키-값 테이블 행
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName GORM 테이블명
func (KVEntry) TableName() string {
	return "storefront_kv"
}

// GormKVStore DB 키-값 저장소
type GormKVStore struct {
	db *gorm.DB
}

// NewGormKVStore 생성자
func NewGormKVStore(db *gorm.DB) *GormKVStore {
	return &GormKVStore{db: db}
}

// Get 값 조회
func (s *GormKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set 값 저장 (upsert)
func (s *GormKVStore) Set(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
