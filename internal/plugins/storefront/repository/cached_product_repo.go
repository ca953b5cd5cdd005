package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/pkg/cache"
)

// CacheConfig 캐시 설정
type CacheConfig struct {
	ProductDetailTTL time.Duration // 상품 상세 TTL (기본 10분)
	ProductListTTL   time.Duration // 상품 목록 TTL (기본 2분)
}

// DefaultCacheConfig 기본 캐시 설정
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		ProductDetailTTL: cache.TTLProduct,
		ProductListTTL:   cache.TTLProducts,
	}
}

// CachedProductRepository 캐시가 적용된 상품 저장소 (cache-aside)
//
// 동시 캐시 미스는 singleflight로 하나의 DB 조회로 합친다.
// 모든 쓰기 작업은 해당 상품 키와 목록 키 전체를 무효화한다.
// 무효화 실패는 쓰기를 실패시키지 않고 경고로 남긴다 (TTL까지 이전 값이 보일 수 있음).
type CachedProductRepository struct {
	repo    ProductRepository
	cache   cache.Service
	config  *CacheConfig
	logger  plugin.Logger
	sfGroup singleflight.Group
}

// NewCachedProductRepository 캐시 적용 상품 저장소 생성
func NewCachedProductRepository(repo ProductRepository, c cache.Service, config *CacheConfig, logger plugin.Logger) *CachedProductRepository {
	if config == nil {
		config = DefaultCacheConfig()
	}
	if logger == nil {
		logger = plugin.NewNopLogger()
	}
	return &CachedProductRepository{
		repo:   repo,
		cache:  c,
		config: config,
		logger: logger,
	}
}

// ============================================
// 캐시 키 생성 헬퍼
// ============================================

func keyProductByID(id string) string {
	return cache.PrefixProduct + id
}

func keyProductList(filter domain.ProductFilter) string {
	f := filter.Normalized()
	return fmt.Sprintf("%sc=%s:b=%s", cache.PrefixProducts, f.Category, f.Brand)
}

// ============================================
// 캐시 무효화 헬퍼
// ============================================

// InvalidateProduct 특정 상품과 모든 목록 캐시 무효화.
// 한쪽이 실패해도 나머지는 시도한다.
func (r *CachedProductRepository) InvalidateProduct(ctx context.Context, ids ...string) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, keyProductByID(id))
	}
	var errs []error
	if len(keys) > 0 {
		if err := r.cache.Delete(ctx, keys...); err != nil {
			errs = append(errs, fmt.Errorf("delete product keys: %w", err))
		}
	}
	if err := r.cache.DeletePattern(ctx, cache.PrefixProducts+"*"); err != nil {
		errs = append(errs, fmt.Errorf("delete list keys: %w", err))
	}
	return errors.Join(errs...)
}

// invalidate 쓰기 후 무효화. 실패는 경고 로그로 남긴다.
func (r *CachedProductRepository) invalidate(ctx context.Context, op string, ids ...string) {
	if err := r.InvalidateProduct(ctx, ids...); err != nil {
		r.logger.Warn("product cache invalidation failed after %s [%s]: %v", op, strings.Join(ids, ","), err)
	}
}

// ============================================
// ProductRepository 인터페이스 구현
// ============================================

// Create 상품 생성 (목록 캐시 무효화)
func (r *CachedProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.repo.Create(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, "create", product.ID)
	return nil
}

// CreateBatch 일괄 생성 (목록 캐시 무효화)
func (r *CachedProductRepository) CreateBatch(ctx context.Context, products []domain.Product) error {
	if err := r.repo.CreateBatch(ctx, products); err != nil {
		return err
	}
	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	r.invalidate(ctx, "create_batch", ids...)
	return nil
}

// Update 상품 수정 (캐시 무효화)
func (r *CachedProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.repo.Update(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, "update", product.ID)
	return nil
}

// Delete 상품 삭제 (캐시 무효화)
func (r *CachedProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, "delete", id)
	return nil
}

// FindByID ID로 상품 조회 (캐시 적용)
func (r *CachedProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	cacheKey := keyProductByID(id)

	var cached domain.Product
	if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	v, err, _ := r.sfGroup.Do(cacheKey, func() (interface{}, error) {
		product, err := r.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		_ = r.cache.Set(ctx, cacheKey, product, r.config.ProductDetailTTL)
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	// singleflight 결과는 공유되므로 복사본 반환
	product := *v.(*domain.Product)
	return &product, nil
}

// List 목록 조회 (캐시 적용)
func (r *CachedProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	cacheKey := keyProductList(filter)

	var cached []domain.Product
	if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	v, err, _ := r.sfGroup.Do(cacheKey, func() (interface{}, error) {
		products, err := r.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		_ = r.cache.Set(ctx, cacheKey, products, r.config.ProductListTTL)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]domain.Product)
	out := make([]domain.Product, len(shared))
	copy(out, shared)
	return out, nil
}

// Count 전체 상품 수 (캐시 미적용)
func (r *CachedProductRepository) Count(ctx context.Context) (int64, error) {
	return r.repo.Count(ctx)
}

// MinPosition 가장 앞 Position (캐시 미적용)
func (r *CachedProductRepository) MinPosition(ctx context.Context) (int64, error) {
	return r.repo.MinPosition(ctx)
}
