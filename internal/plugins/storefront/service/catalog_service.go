package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	nanoid "github.com/jaevor/go-nanoid"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/repository"
)

// ImportedIDPrefix 일괄 가져오기로 생성된 상품 ID 접두사
const ImportedIDPrefix = "imported_"

// CatalogService 카탈로그 서비스 인터페이스
type CatalogService interface {
	// 조회
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)

	// 관리
	Upsert(ctx context.Context, product *domain.Product) (*domain.Product, bool, error)
	Delete(ctx context.Context, id string) error
	ImportMany(ctx context.Context, products []domain.Product) (int, error)

	// 분류
	Taxonomy(ctx context.Context, category string) (*domain.Taxonomy, error)
	AvailableBrands(ctx context.Context, category string) ([]string, error)
	AddTaxonomy(ctx context.Context, kind domain.TaxonomyKind, name string) (bool, error)
	RemoveTaxonomy(ctx context.Context, kind domain.TaxonomyKind, name string) error

	// 초기 데이터
	Seed(ctx context.Context) (int, error)
}

type catalogService struct {
	products repository.ProductRepository
	taxonomy repository.TaxonomyRepository
	newID    func() string
}

// NewCatalogService 생성자
func NewCatalogService(products repository.ProductRepository, taxonomy repository.TaxonomyRepository) (CatalogService, error) {
	gen, err := nanoid.Standard(12)
	if err != nil {
		return nil, fmt.Errorf("init id generator: %w", err)
	}
	return &catalogService{
		products: products,
		taxonomy: taxonomy,
		newID:    gen,
	}, nil
}

// List 필터 적용 상품 목록
func (s *catalogService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

// Get 상품 단건 조회
func (s *catalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Upsert 상품 생성 또는 수정.
// ID가 없거나 존재하지 않는 상품은 신규로 간주해 목록 맨 앞에 추가한다.
func (s *catalogService) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, bool, error) {
	if product.ID == "" {
		product.ID = s.newID()
	}
	applyDefaults(product)
	if err := product.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.products.FindByID(ctx, product.ID)
	switch {
	case err == nil:
		product.Position = existing.Position
		product.CreatedAt = existing.CreatedAt
		if err := s.products.Update(ctx, product); err != nil {
			return nil, false, err
		}
		s.registerTaxonomy(ctx, []domain.Product{*product})
		return product, false, nil
	case errors.Is(err, domain.ErrProductNotFound):
		pos, err := s.products.MinPosition(ctx)
		if err != nil {
			return nil, false, err
		}
		product.Position = pos - 1
		product.IsNew = true
		if err := s.products.Create(ctx, product); err != nil {
			return nil, false, err
		}
		s.registerTaxonomy(ctx, []domain.Product{*product})
		return product, true, nil
	default:
		return nil, false, err
	}
}

// Delete 상품 삭제 (없어도 에러 없음)
func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// ImportMany 일괄 가져오기.
// 주어진 순서 그대로 목록 맨 앞에 붙이고, 새 카테고리/브랜드를 분류에 추가한다.
func (s *catalogService) ImportMany(ctx context.Context, products []domain.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	pos, err := s.products.MinPosition(ctx)
	if err != nil {
		return 0, err
	}
	start := pos - int64(len(products))

	batch := make([]domain.Product, len(products))
	for i := range products {
		p := products[i]
		if strings.TrimSpace(p.ID) == "" {
			p.ID = ImportedIDPrefix + s.newID()
		}
		applyDefaults(&p)
		p.IsNew = true
		p.Position = start + int64(i)
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		batch[i] = p
	}

	if err := s.products.CreateBatch(ctx, batch); err != nil {
		return 0, err
	}
	s.registerTaxonomy(ctx, batch)
	return len(batch), nil
}

// Taxonomy 카테고리/브랜드 목록 (category가 주어지면 해당 카테고리의 브랜드 포함)
func (s *catalogService) Taxonomy(ctx context.Context, category string) (*domain.Taxonomy, error) {
	categories, err := s.taxonomy.List(ctx, domain.TaxonomyCategory)
	if err != nil {
		return nil, err
	}
	brands, err := s.taxonomy.List(ctx, domain.TaxonomyBrand)
	if err != nil {
		return nil, err
	}
	available, err := s.AvailableBrands(ctx, category)
	if err != nil {
		return nil, err
	}
	return &domain.Taxonomy{
		Categories:      categories,
		Brands:          brands,
		AvailableBrands: available,
	}, nil
}

// AvailableBrands 카테고리 선택 시 해당 카테고리 상품에 실제로 있는 브랜드만 반환
func (s *catalogService) AvailableBrands(ctx context.Context, category string) ([]string, error) {
	filter := domain.ProductFilter{Category: category}.Normalized()
	if filter.Category == "" {
		return s.taxonomy.List(ctx, domain.TaxonomyBrand)
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	brands := make([]string, 0)
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands, nil
}

// AddTaxonomy 카테고리/브랜드 추가
func (s *catalogService) AddTaxonomy(ctx context.Context, kind domain.TaxonomyKind, name string) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: unknown taxonomy kind %q", domain.ErrInvalidProduct, kind)
	}
	return s.taxonomy.Add(ctx, kind, name)
}

// RemoveTaxonomy 카테고리/브랜드 삭제 (상품은 변경하지 않음)
func (s *catalogService) RemoveTaxonomy(ctx context.Context, kind domain.TaxonomyKind, name string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown taxonomy kind %q", domain.ErrInvalidProduct, kind)
	}
	return s.taxonomy.Remove(ctx, kind, name)
}

// Seed 상품이 하나도 없을 때 초기 카탈로그와 분류를 넣는다
func (s *catalogService) Seed(ctx context.Context) (int, error) {
	n, err := s.products.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for _, name := range domain.DefaultCategories() {
		if _, err := s.taxonomy.Add(ctx, domain.TaxonomyCategory, name); err != nil {
			return 0, err
		}
	}
	for _, name := range domain.DefaultBrands() {
		if _, err := s.taxonomy.Add(ctx, domain.TaxonomyBrand, name); err != nil {
			return 0, err
		}
	}

	products := domain.SeedProducts()
	if err := s.products.CreateBatch(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// registerTaxonomy 상품에 쓰인 새 카테고리/브랜드를 분류 목록 뒤에 추가 (실패는 무시)
func (s *catalogService) registerTaxonomy(ctx context.Context, products []domain.Product) {
	for _, p := range products {
		_, _ = s.taxonomy.Add(ctx, domain.TaxonomyCategory, p.Category)
		_, _ = s.taxonomy.Add(ctx, domain.TaxonomyBrand, p.Brand)
	}
}

func applyDefaults(p *domain.Product) {
	if strings.TrimSpace(p.Category) == "" {
		p.Category = domain.DefaultCategory
	}
	if strings.TrimSpace(p.Brand) == "" {
		p.Brand = domain.DefaultBrand
	}
	if strings.TrimSpace(p.Unit) == "" {
		p.Unit = domain.DefaultUnit
	}
	if strings.TrimSpace(p.Image) == "" {
		p.Image = domain.DefaultImage
	}
}
