package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product 카탈로그 상품 엔티티
//
// Price는 기본 단위 가격, SecondaryUnit/SecondaryPrice는 선택적 대량 단위.
// DiscountPercent는 기본 단위에만 적용된다. Offer 필드는 표시 전용이며 가격 계산에 쓰이지 않는다.
type Product struct {
	ID              string              `gorm:"primaryKey;size:64" json:"id"`
	Name            string              `gorm:"size:255;not null" json:"name"`
	Description     string              `gorm:"type:text" json:"description"`
	Price           decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"price"`
	Image           string              `gorm:"size:1000" json:"image"`
	Category        string              `gorm:"size:100;index" json:"category"`
	Brand           string              `gorm:"size:100;index" json:"brand"`
	Unit            string              `gorm:"size:50;not null" json:"unit"`
	SecondaryUnit   string              `gorm:"column:secondary_unit;size:50" json:"secondary_unit,omitempty"`
	SecondaryPrice  decimal.NullDecimal `gorm:"column:secondary_price;type:decimal(12,2)" json:"secondary_price"`
	DiscountPercent *int                `gorm:"column:discount_percent" json:"discount_percent,omitempty"`
	IsNew           bool                `gorm:"column:is_new;default:false" json:"is_new"`
	OfferQuantity   *int                `gorm:"column:offer_quantity" json:"offer_quantity,omitempty"`
	OfferPrice      decimal.NullDecimal `gorm:"column:offer_price;type:decimal(12,2)" json:"offer_price"`
	Position        int64               `gorm:"index" json:"position"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// TableName GORM 테이블명
func (Product) TableName() string {
	return "storefront_products"
}

// HasSecondaryUnit 보조 단위 판매 여부
func (p *Product) HasSecondaryUnit() bool {
	return p.SecondaryUnit != "" && p.SecondaryPrice.Valid
}

// Discount 유효 할인율 (없으면 0)
func (p *Product) Discount() int {
	if p.DiscountPercent == nil {
		return 0
	}
	return *p.DiscountPercent
}

// DiscountedPrice 기본 단위 할인가 (표시용)
func (p *Product) DiscountedPrice() decimal.Decimal {
	return ApplyDiscount(p.Price, p.Discount())
}

// Snapshot 장바구니 라인에 고정되는 표시 정보
func (p *Product) Snapshot() LineSnapshot {
	return LineSnapshot{
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category,
		Image:    p.Image,
	}
}

// Offer 묶음 할인 배지 (표시 전용)
func (p *Product) Offer() *OfferBadge {
	if p.OfferQuantity == nil || !p.OfferPrice.Valid {
		return nil
	}
	return &OfferBadge{Quantity: *p.OfferQuantity, Price: p.OfferPrice.Decimal}
}

// Validate 상품 불변식 검사
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Unit) == "" {
		return fmt.Errorf("%w: unit is required", ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	hasUnit := p.SecondaryUnit != ""
	if hasUnit != p.SecondaryPrice.Valid {
		return fmt.Errorf("%w: secondary unit and secondary price must be set together", ErrInvalidProduct)
	}
	if hasUnit {
		if p.SecondaryPrice.Decimal.IsNegative() {
			return fmt.Errorf("%w: secondary price must not be negative", ErrInvalidProduct)
		}
		if p.SecondaryUnit == p.Unit {
			return fmt.Errorf("%w: secondary unit must differ from unit %q", ErrInvalidProduct, p.Unit)
		}
	}

	if p.DiscountPercent != nil && (*p.DiscountPercent < 0 || *p.DiscountPercent > 100) {
		return fmt.Errorf("%w: discount percent must be within 0..100", ErrInvalidProduct)
	}

	if (p.OfferQuantity == nil) != !p.OfferPrice.Valid {
		return fmt.Errorf("%w: offer quantity and offer price must be set together", ErrInvalidProduct)
	}
	if p.OfferQuantity != nil {
		if *p.OfferQuantity < 1 {
			return fmt.Errorf("%w: offer quantity must be at least 1", ErrInvalidProduct)
		}
		if p.OfferPrice.Decimal.IsNegative() {
			return fmt.Errorf("%w: offer price must not be negative", ErrInvalidProduct)
		}
	}
	return nil
}

// ApplyDiscount price * (100 - percent) / 100
func ApplyDiscount(price decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return price
	}
	factor := decimal.NewFromInt(int64(100 - percent)).Div(decimal.NewFromInt(100))
	return price.Mul(factor)
}

// OfferBadge 묶음 할인 표시 정보
type OfferBadge struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ProductRequest 상품 생성/수정 요청 DTO
type ProductRequest struct {
	ID              string           `json:"id"`
	Name            string           `json:"name" binding:"required,max=255"`
	Description     string           `json:"description" binding:"max=5000"`
	Price           decimal.Decimal  `json:"price"`
	Image           string           `json:"image" binding:"omitempty,max=1000"`
	Category        string           `json:"category" binding:"max=100"`
	Brand           string           `json:"brand" binding:"max=100"`
	Unit            string           `json:"unit" binding:"max=50"`
	SecondaryUnit   string           `json:"secondary_unit" binding:"max=50"`
	SecondaryPrice  *decimal.Decimal `json:"secondary_price"`
	DiscountPercent *int             `json:"discount_percent"`
	IsNew           *bool            `json:"is_new"`
	OfferQuantity   *int             `json:"offer_quantity"`
	OfferPrice      *decimal.Decimal `json:"offer_price"`
}

// ToProduct 요청 DTO를 엔티티로 변환
func (r *ProductRequest) ToProduct() *Product {
	p := &Product{
		ID:              strings.TrimSpace(r.ID),
		Name:            strings.TrimSpace(r.Name),
		Description:     r.Description,
		Price:           r.Price,
		Image:           r.Image,
		Category:        strings.TrimSpace(r.Category),
		Brand:           strings.TrimSpace(r.Brand),
		Unit:            strings.TrimSpace(r.Unit),
		SecondaryUnit:   strings.TrimSpace(r.SecondaryUnit),
		DiscountPercent: r.DiscountPercent,
		OfferQuantity:   r.OfferQuantity,
	}
	if r.SecondaryPrice != nil {
		p.SecondaryPrice = decimal.NewNullDecimal(*r.SecondaryPrice)
	}
	if r.OfferPrice != nil {
		p.OfferPrice = decimal.NewNullDecimal(*r.OfferPrice)
	}
	if r.IsNew != nil {
		p.IsNew = *r.IsNew
	}
	return p
}

// ProductResponse 상품 응답 DTO
type ProductResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Image           string           `json:"image"`
	Category        string           `json:"category"`
	Brand           string           `json:"brand"`
	Unit            string           `json:"unit"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice decimal.Decimal  `json:"discounted_price"`
	DiscountPercent int              `json:"discount_percent,omitempty"`
	SecondaryUnit   string           `json:"secondary_unit,omitempty"`
	SecondaryPrice  *decimal.Decimal `json:"secondary_price,omitempty"`
	IsNew           bool             `json:"is_new"`
	Offer           *OfferBadge      `json:"offer,omitempty"`
	IsFavorite      bool             `json:"is_favorite"`
}

// ToResponse Product → ProductResponse
func (p *Product) ToResponse(isFavorite bool) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Image:           p.Image,
		Category:        p.Category,
		Brand:           p.Brand,
		Unit:            p.Unit,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice(),
		DiscountPercent: p.Discount(),
		SecondaryUnit:   p.SecondaryUnit,
		IsNew:           p.IsNew,
		Offer:           p.Offer(),
		IsFavorite:      isFavorite,
	}
	if p.HasSecondaryUnit() {
		sp := p.SecondaryPrice.Decimal
		resp.SecondaryPrice = &sp
	}
	return resp
}

// ProductFilter 목록 필터 (빈 값 또는 AllFilter는 전체)
type ProductFilter struct {
	Category string `form:"category"`
	Brand    string `form:"brand"`
}

// Normalized AllFilter를 빈 값으로 정규화
func (f ProductFilter) Normalized() ProductFilter {
	return ProductFilter{Category: normalizeFilter(f.Category), Brand: normalizeFilter(f.Brand)}
}

func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if v == AllFilter {
		return ""
	}
	return v
}
