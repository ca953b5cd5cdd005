package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

// ProductRepository 상품 저장소 인터페이스
type ProductRepository interface {
	// 생성/수정/삭제
	Create(ctx context.Context, product *domain.Product) error
	CreateBatch(ctx context.Context, products []domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error

	// 조회
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
	MinPosition(ctx context.Context) (int64, error)
}

// productRepository GORM 구현체
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 생성자
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create 상품 생성
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	return r.db.WithContext(ctx).Create(product).Error
}

// CreateBatch 여러 상품을 하나의 트랜잭션으로 생성
func (r *productRepository) CreateBatch(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	now := time.Now()
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(products, 100).Error
	})
}

// Update 상품 전체 필드 수정 (nil 포인터 필드도 반영)
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "created_at", "position").
		Updates(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete 상품 삭제 (없는 상품이어도 에러 없음)
func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}

// FindByID ID로 상품 조회
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &product, nil
}

// List 필터 적용 목록 (Position 오름차순)
func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter = filter.Normalized()
	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}

	var products []domain.Product
	err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: "position"}}).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Count 전체 상품 수
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error
	return n, err
}

// MinPosition 가장 앞 Position (상품이 없으면 0)
func (r *productRepository) MinPosition(ctx context.Context) (int64, error) {
	var pos int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("COALESCE(MIN(position), 0)").
		Row().Scan(&pos)
	return pos, err
}
