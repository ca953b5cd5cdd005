package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultImportName 이름이 비어 있는 가져오기 행의 기본 이름
const DefaultImportName = "منتج جديد"

// ImportColumns 가져오기 템플릿 컬럼 순서
var ImportColumns = []string{
	"name", "description", "price", "category", "brand",
	"unit", "discountPercent", "image", "offerQuantity", "offerPrice",
}

// ImportRow 스프레드시트/JSON 가져오기 한 행. 숫자는 관대하게 해석한다.
type ImportRow struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	Category        string `json:"category"`
	Brand           string `json:"brand"`
	Unit            string `json:"unit"`
	DiscountPercent string `json:"discountPercent"`
	Image           string `json:"image"`
	OfferQuantity   string `json:"offerQuantity"`
	OfferPrice      string `json:"offerPrice"`
}

// ImportRowFromRecord 템플릿 순서의 CSV 레코드를 행으로 변환 (빠진 컬럼은 빈 값)
func ImportRowFromRecord(header map[string]int, record []string) ImportRow {
	get := func(col string) string {
		i, ok := header[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return ImportRow{
		Name:            get("name"),
		Description:     get("description"),
		Price:           get("price"),
		Category:        get("category"),
		Brand:           get("brand"),
		Unit:            get("unit"),
		DiscountPercent: get("discountPercent"),
		Image:           get("image"),
		OfferQuantity:   get("offerQuantity"),
		OfferPrice:      get("offerPrice"),
	}
}

// ToProduct 행을 상품으로 변환.
// 숫자로 읽을 수 없는 가격/할인은 0, 묶음 할인은 수량과 가격이 모두 양수일 때만 설정된다.
func (r ImportRow) ToProduct() Product {
	p := Product{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       lenientDecimal(r.Price),
		Category:    strings.TrimSpace(r.Category),
		Brand:       strings.TrimSpace(r.Brand),
		Unit:        strings.TrimSpace(r.Unit),
		Image:       strings.TrimSpace(r.Image),
		IsNew:       true,
	}
	if p.Name == "" {
		p.Name = DefaultImportName
	}
	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}
	if d := lenientInt(r.DiscountPercent); d > 0 && d <= 100 {
		p.DiscountPercent = &d
	}
	qty := lenientInt(r.OfferQuantity)
	offer := lenientDecimal(r.OfferPrice)
	if qty > 0 && offer.IsPositive() {
		p.OfferQuantity = &qty
		p.OfferPrice = decimal.NewNullDecimal(offer)
	}
	return p
}

func lenientDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func lenientInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}
