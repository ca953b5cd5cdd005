package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnitSelection 구매 단위 선택
type UnitSelection string

const (
	UnitPrimary   UnitSelection = "primary"
	UnitSecondary UnitSelection = "secondary"
)

// ParseUnitSelection 문자열을 단위 선택으로 변환 (빈 값은 기본 단위)
func ParseUnitSelection(s string) (UnitSelection, error) {
	switch UnitSelection(strings.ToLower(strings.TrimSpace(s))) {
	case "", UnitPrimary:
		return UnitPrimary, nil
	case UnitSecondary:
		return UnitSecondary, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSelection, s)
	}
}

// ResolvedPrice 단위 가격 해석 결과
type ResolvedPrice struct {
	Unit             string          `json:"unit"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	DiscountEligible bool            `json:"discount_eligible"`
	DiscountPercent  int             `json:"discount_percent,omitempty"`
}

// LineSnapshot 장바구니 추가 시점의 상품 표시 정보
type LineSnapshot struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// CartLine 장바구니 라인
//
// LineID는 (ProductID, SelectedUnit) 조합이다. 가격과 할인율은 추가 시점에 고정되며
// 이후 카탈로그 변경이나 삭제의 영향을 받지 않는다.
type CartLine struct {
	LineID          string          `json:"line_id"`
	ProductID       string          `json:"product_id"`
	Selection       UnitSelection   `json:"selection"`
	SelectedUnit    string          `json:"selected_unit"`
	PrimaryUnit     string          `json:"primary_unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent int             `json:"discount_percent,omitempty"`
	Quantity        int             `json:"quantity"`
	Snapshot        LineSnapshot    `json:"snapshot"`
	AddedAt         time.Time       `json:"added_at"`
}

// LineID 라인 식별자 생성
func LineID(productID, unit string) string {
	return productID + "-" + unit
}

// LinePrice 라인 가격 계산 결과
type LinePrice struct {
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Totals 장바구니 합계
type Totals struct {
	ItemCount   int             `json:"item_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// CartLineView 라인 + 가격 (응답용)
type CartLineView struct {
	CartLine
	LinePrice
}

// CartView 장바구니 응답
type CartView struct {
	Lines        []CartLineView `json:"lines"`
	Totals       Totals         `json:"totals"`
	PointsToEarn int64          `json:"points_to_earn"`
	Currency     string         `json:"currency"`
}

// AddToCartRequest 장바구니 추가 요청
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Unit      string `json:"unit" binding:"omitempty,oneof=primary secondary"`
}

// MaxLineQuantity 한 라인의 최대 수량
const MaxLineQuantity = 9999

// ChangeQuantityRequest 수량 변경 요청 (+1/-1 등 증감값)
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required,min=-9999,max=9999"`
}

// AddToCartResult 장바구니 추가 결과
type AddToCartResult struct {
	Line    CartLine `json:"line"`
	Created bool     `json:"created"`
}
