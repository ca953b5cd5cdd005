package exporter

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/pkg/i18n"
)

func sampleSummary() domain.OrderSummary {
	return domain.OrderSummary{
		Reference: "ord-1",
		StoreName: "Rokn",
		Currency:  "SAR",
		Locale:    "en",
		Lines: []domain.OrderLine{
			{ProductID: "1", Name: "Burger", Unit: "bag", Quantity: 2, EffectivePrice: decimal.RequireFromString("40.5"), Subtotal: decimal.RequireFromString("81")},
		},
		Totals: domain.Totals{
			ItemCount:   2,
			Subtotal:    decimal.RequireFromString("81"),
			DeliveryFee: decimal.RequireFromString("15"),
			GrandTotal:  decimal.RequireFromString("96"),
		},
		PointsEarned: 9,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWhatsAppExporter_Export(t *testing.T) {
	e := NewWhatsAppExporter("+966 50-000-0000", i18n.NewDefaultBundle(i18n.LocaleAr))

	receipt, err := e.Export(context.Background(), sampleSummary())
	require.NoError(t, err)

	assert.Equal(t, ChannelWhatsApp, receipt.Channel)
	assert.True(t, strings.HasPrefix(receipt.URL, "https://wa.me/966500000000?text="))

	u, err := url.Parse(receipt.URL)
	require.NoError(t, err)
	assert.Equal(t, receipt.Message, u.Query().Get("text"))

	assert.Contains(t, receipt.Message, "New order from Rokn")
	assert.Contains(t, receipt.Message, "Order ref: ord-1")
	assert.Contains(t, receipt.Message, "- Burger (bag) x 2 = 81.00 SAR")
	assert.Contains(t, receipt.Message, "Delivery: 15.00 SAR")
	assert.Contains(t, receipt.Message, "Total: 96.00 SAR")
	assert.Contains(t, receipt.Message, "Loyalty points earned: 9")
}

func TestWhatsAppExporter_ArabicDefault(t *testing.T) {
	e := NewWhatsAppExporter("966500000000", i18n.NewDefaultBundle(i18n.LocaleAr))
	s := sampleSummary()
	s.Locale = ""

	msg := e.FormatMessage(s)
	assert.Contains(t, msg, "طلب جديد من Rokn")
	assert.Contains(t, msg, "نقاط الولاء المكتسبة: 9")
}

func TestWhatsAppExporter_Failures(t *testing.T) {
	bundle := i18n.NewDefaultBundle(i18n.LocaleAr)

	t.Run("번호 미설정", func(t *testing.T) {
		_, err := NewWhatsAppExporter("", bundle).Export(context.Background(), sampleSummary())
		assert.ErrorIs(t, err, ErrExportFailed)
	})

	t.Run("빈 주문", func(t *testing.T) {
		_, err := NewWhatsAppExporter("966500000000", bundle).Export(context.Background(), domain.OrderSummary{})
		assert.ErrorIs(t, err, ErrExportFailed)
	})

	t.Run("취소된 컨텍스트", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewWhatsAppExporter("966500000000", bundle).Export(ctx, sampleSummary())
		assert.ErrorIs(t, err, ErrExportFailed)
	})
}
