package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

// DefaultPointsDivisor 적립 포인트 = floor(총액 / 10)
const DefaultPointsDivisor int64 = 10

// ResolveUnitPrice 상품과 단위 선택으로부터 표시 단위/가격/할인 적용 여부를 결정한다.
// 보조 단위에는 할인율이 적용되지 않는다.
func ResolveUnitPrice(product *domain.Product, selection domain.UnitSelection) (domain.ResolvedPrice, error) {
	switch selection {
	case domain.UnitPrimary:
		d := product.Discount()
		res := domain.ResolvedPrice{
			Unit:      product.Unit,
			UnitPrice: product.Price,
		}
		if d > 0 {
			res.DiscountEligible = true
			res.DiscountPercent = d
		}
		return res, nil
	case domain.UnitSecondary:
		if !product.HasSecondaryUnit() {
			return domain.ResolvedPrice{}, fmt.Errorf("%w: product %s has no secondary unit", domain.ErrInvalidSelection, product.ID)
		}
		return domain.ResolvedPrice{
			Unit:      product.SecondaryUnit,
			UnitPrice: product.SecondaryPrice.Decimal,
		}, nil
	default:
		return domain.ResolvedPrice{}, fmt.Errorf("%w: %q", domain.ErrInvalidSelection, selection)
	}
}

// ComputeLine 라인의 실 단가와 소계 (추가 시점에 고정된 값만 사용)
func ComputeLine(line *domain.CartLine) domain.LinePrice {
	effective := line.UnitPrice
	if line.SelectedUnit == line.PrimaryUnit && line.DiscountPercent > 0 {
		effective = domain.ApplyDiscount(line.UnitPrice, line.DiscountPercent)
	}
	return domain.LinePrice{
		EffectivePrice: effective,
		Subtotal:       effective.Mul(decimal.NewFromInt(int64(line.Quantity))),
	}
}

// ComputeCartTotals 장바구니 합계 (배송비는 고정)
func ComputeCartTotals(lines []domain.CartLine, deliveryFee decimal.Decimal) domain.Totals {
	totals := domain.Totals{
		Subtotal:    decimal.Zero,
		DeliveryFee: deliveryFee,
	}
	for i := range lines {
		totals.ItemCount += lines[i].Quantity
		totals.Subtotal = totals.Subtotal.Add(ComputeLine(&lines[i]).Subtotal)
	}
	totals.GrandTotal = totals.Subtotal.Add(deliveryFee)
	return totals
}

// LoyaltyPointsEarned floor(grandTotal / divisor)
func LoyaltyPointsEarned(grandTotal decimal.Decimal, divisor int64) int64 {
	if divisor <= 0 {
		divisor = DefaultPointsDivisor
	}
	if !grandTotal.IsPositive() {
		return 0
	}
	return grandTotal.Div(decimal.NewFromInt(divisor)).Floor().IntPart()
}

// Pricing 배송비와 포인트 규칙을 묶은 값 객체
type Pricing struct {
	DeliveryFee   decimal.Decimal
	PointsDivisor int64
	Currency      string
}

// Totals 라인 목록의 합계
func (p Pricing) Totals(lines []domain.CartLine) domain.Totals {
	return ComputeCartTotals(lines, p.DeliveryFee)
}

// Points 총액 기준 적립 포인트
func (p Pricing) Points(grandTotal decimal.Decimal) int64 {
	return LoyaltyPointsEarned(grandTotal, p.PointsDivisor)
}

// View 장바구니 응답 생성
func (p Pricing) View(lines []domain.CartLine) domain.CartView {
	views := make([]domain.CartLineView, len(lines))
	for i := range lines {
		views[i] = domain.CartLineView{CartLine: lines[i], LinePrice: ComputeLine(&lines[i])}
	}
	totals := p.Totals(lines)
	view := domain.CartView{
		Lines:    views,
		Totals:   totals,
		Currency: p.Currency,
	}
	if len(lines) > 0 {
		view.PointsToEarn = p.Points(totals.GrandTotal)
	}
	return view
}
