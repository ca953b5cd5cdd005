package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine 주문 요약 라인
type OrderLine struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// OrderSummary 외부 채널로 전달되는 주문 요약
type OrderSummary struct {
	Reference    string      `json:"reference"`
	StoreName    string      `json:"store_name"`
	Currency     string      `json:"currency"`
	Lines        []OrderLine `json:"lines"`
	Totals       Totals      `json:"totals"`
	PointsEarned int64       `json:"points_earned"`
	Locale       string      `json:"locale"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ExportReceipt 주문 전달 결과
type ExportReceipt struct {
	Channel string `json:"channel"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message"`
}

// CheckoutResult 결제(주문 전송) 결과
type CheckoutResult struct {
	Exported      bool           `json:"exported"`
	Summary       *OrderSummary  `json:"summary,omitempty"`
	Receipt       *ExportReceipt `json:"receipt,omitempty"`
	PointsAwarded int64          `json:"points_awarded"`
	PointsBalance int64          `json:"points_balance"`
}
