package service

import (
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

// Favorites 추가 순서를 유지하는 즐겨찾기 상품 ID 집합
type Favorites struct {
	ids   []string
	index map[string]struct{}
}

// NewFavorites 초기 ID 목록으로 생성 (중복/빈 값 제거)
func NewFavorites(ids ...string) *Favorites {
	f := &Favorites{index: make(map[string]struct{})}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := f.index[id]; ok {
			continue
		}
		f.index[id] = struct{}{}
		f.ids = append(f.ids, id)
	}
	return f
}

// Toggle 없으면 추가, 있으면 제거. 변경 후 포함 여부를 반환한다.
func (f *Favorites) Toggle(productID string) bool {
	if _, ok := f.index[productID]; ok {
		delete(f.index, productID)
		for i, id := range f.ids {
			if id == productID {
				f.ids = append(f.ids[:i], f.ids[i+1:]...)
				break
			}
		}
		return false
	}
	f.index[productID] = struct{}{}
	f.ids = append(f.ids, productID)
	return true
}

// Contains 즐겨찾기 여부
func (f *Favorites) Contains(productID string) bool {
	_, ok := f.index[productID]
	return ok
}

// IDs ID 목록 복사본
func (f *Favorites) IDs() []string {
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}

// Len 개수
func (f *Favorites) Len() int {
	return len(f.ids)
}

// List 현재 카탈로그를 즐겨찾기 여부로 필터링한 목록 (카탈로그 순서).
// 카탈로그에서 삭제된 상품은 결과에서 빠진다.
func (f *Favorites) List(catalog []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(f.ids))
	for i := range catalog {
		if f.Contains(catalog[i].ID) {
			out = append(out, catalog[i])
		}
	}
	return out
}
