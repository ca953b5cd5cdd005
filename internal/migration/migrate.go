package migration

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/repository"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/service"
)

// Tables 상점 테이블 모델 (생성 순서)
func Tables() []interface{} {
	return []interface{}{&domain.Product{}, &domain.TaxonomyEntry{}, &repository.KVEntry{}}
}

// Run executes AutoMigrate for the storefront tables.
func Run(db *gorm.DB) error {
	// 테이블 없으면 생성, 있으면 컬럼만 보강
	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Seed 상품 테이블이 비어 있을 때만 기본 카탈로그와 분류를 삽입
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	catalog, err := service.NewCatalogService(repository.NewProductRepository(db), repository.NewTaxonomyRepository(db))
	if err != nil {
		return 0, err
	}
	n, err := catalog.Seed(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	log.Printf("[Migration] Seeded %d products", n)
	return n, nil
}

// Counts 테이블별 행 수
func Counts(db *gorm.DB) (map[string]int64, error) {
	out := make(map[string]int64, 3)
	for _, model := range Tables() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, err
		}
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", stmt.Schema.Table, err)
		}
		out[stmt.Schema.Table] = count
	}
	return out, nil
}

// Verify 저장된 상품이 현재 검증 규칙을 통과하는지 확인. 문제 목록을 반환한다.
func Verify(db *gorm.DB) ([]string, error) {
	var products []domain.Product
	if err := db.Order("position ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	var issues []string
	for i := range products {
		if err := products[i].Validate(); err != nil {
			issues = append(issues, fmt.Sprintf("product %s: %v", products[i].ID, err))
		}
	}
	return issues, nil
}

// Rollback 상점 테이블 삭제 (역순)
func Rollback(db *gorm.DB) error {
	tables := Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	log.Printf("[Migration] Dropped %d storefront tables", len(tables))
	return nil
}
