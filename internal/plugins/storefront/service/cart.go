package service

import (
	"time"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

// Cart 순서가 유지되는 장바구니 라인 집합
//
// 동시성 보호는 소유자(Session)의 책임이다.
type Cart struct {
	lines []*domain.CartLine
	index map[string]*domain.CartLine
	now   func() time.Time
}

// NewCart 빈 장바구니
func NewCart() *Cart {
	return &Cart{
		index: make(map[string]*domain.CartLine),
		now:   time.Now,
	}
}

// Add 상품을 장바구니에 추가한다.
// 같은 (상품, 단위) 라인이 있으면 가격을 다시 계산하지 않고 수량만 1 증가시킨다.
func (c *Cart) Add(product *domain.Product, selection domain.UnitSelection) (domain.CartLine, bool, error) {
	resolved, err := ResolveUnitPrice(product, selection)
	if err != nil {
		return domain.CartLine{}, false, err
	}

	id := domain.LineID(product.ID, resolved.Unit)
	if line, ok := c.index[id]; ok {
		if line.Quantity < domain.MaxLineQuantity {
			line.Quantity++
		}
		return *line, false, nil
	}

	line := &domain.CartLine{
		LineID:          id,
		ProductID:       product.ID,
		Selection:       selection,
		SelectedUnit:    resolved.Unit,
		PrimaryUnit:     product.Unit,
		UnitPrice:       resolved.UnitPrice,
		DiscountPercent: resolved.DiscountPercent,
		Quantity:        1,
		Snapshot:        product.Snapshot(),
		AddedAt:         c.now(),
	}
	c.lines = append(c.lines, line)
	c.index[id] = line
	return *line, true, nil
}

// ChangeQuantity 수량 증감. 결과가 0 이하이면 라인을 제거하고 nil을 반환한다.
// 증가는 MaxLineQuantity에서 멈춘다. 없는 라인은 무시한다.
func (c *Cart) ChangeQuantity(lineID string, delta int) *domain.CartLine {
	line, ok := c.index[lineID]
	if !ok {
		return nil
	}
	if delta <= -line.Quantity {
		c.Remove(lineID)
		return nil
	}
	if delta > domain.MaxLineQuantity-line.Quantity {
		line.Quantity = domain.MaxLineQuantity
	} else {
		line.Quantity += delta
	}
	out := *line
	return &out
}

// Remove 라인 삭제 (없으면 무시)
func (c *Cart) Remove(lineID string) bool {
	if _, ok := c.index[lineID]; !ok {
		return false
	}
	delete(c.index, lineID)
	for i, l := range c.lines {
		if l.LineID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	return true
}

// QuantityFor 상품/단위 조합의 현재 수량 (없거나 선택이 유효하지 않으면 0)
func (c *Cart) QuantityFor(product *domain.Product, selection domain.UnitSelection) int {
	resolved, err := ResolveUnitPrice(product, selection)
	if err != nil {
		return 0
	}
	if line, ok := c.index[domain.LineID(product.ID, resolved.Unit)]; ok {
		return line.Quantity
	}
	return 0
}

// Lines 추가 순서대로 라인 복사본 반환
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// Line 단일 라인 조회
func (c *Cart) Line(lineID string) (domain.CartLine, bool) {
	line, ok := c.index[lineID]
	if !ok {
		return domain.CartLine{}, false
	}
	return *line, true
}

// ItemCount 수량 합계
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty 빈 장바구니 여부
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear 전체 비우기
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]*domain.CartLine)
}
