package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

// TaxonomyRepository 카테고리/브랜드 저장소
type TaxonomyRepository interface {
	List(ctx context.Context, kind domain.TaxonomyKind) ([]string, error)
	Add(ctx context.Context, kind domain.TaxonomyKind, name string) (bool, error)
	Remove(ctx context.Context, kind domain.TaxonomyKind, name string) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository 생성자
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// List 등록 순서대로 이름 목록
func (r *taxonomyRepository) List(ctx context.Context, kind domain.TaxonomyKind) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&domain.TaxonomyEntry{}).
		Where("kind = ?", kind).
		Order("position ASC").
		Order("id ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Add 맨 뒤에 추가. 공백이거나 "전체" 값이거나 이미 있으면 false.
func (r *taxonomyRepository) Add(ctx context.Context, kind domain.TaxonomyKind, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == domain.AllFilter {
		return false, nil
	}

	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.TaxonomyEntry{}).
			Where("kind = ? AND name = ?", kind, name).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists > 0 {
			return nil
		}

		var maxPos int
		if err := tx.Model(&domain.TaxonomyEntry{}).
			Where("kind = ?", kind).
			Select("COALESCE(MAX(position), -1)").
			Row().Scan(&maxPos); err != nil {
			return err
		}

		if err := tx.Create(&domain.TaxonomyEntry{Kind: kind, Name: name, Position: maxPos + 1}).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// Remove 삭제 (없으면 무시)
func (r *taxonomyRepository) Remove(ctx context.Context, kind domain.TaxonomyKind, name string) error {
	return r.db.WithContext(ctx).
		Where("kind = ? AND name = ?", kind, strings.TrimSpace(name)).
		Delete(&domain.TaxonomyEntry{}).Error
}
