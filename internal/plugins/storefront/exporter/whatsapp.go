package exporter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/pkg/i18n"
)

// ErrExportFailed 주문 요약을 외부 채널로 전달하지 못함
var ErrExportFailed = errors.New("order export failed")

// ChannelWhatsApp WhatsApp 딥링크 채널
const ChannelWhatsApp = "whatsapp"

// OrderExporter 주문 요약을 외부 채널로 전달
type OrderExporter interface {
	Export(ctx context.Context, summary domain.OrderSummary) (domain.ExportReceipt, error)
}

// WhatsAppExporter 고정 번호로 보내는 wa.me 링크를 만든다. 실제 전송은 클라이언트가 링크를 열어 수행한다.
type WhatsAppExporter struct {
	number   string
	messages *i18n.Bundle
}

// NewWhatsAppExporter 생성자. number는 국가번호 포함 숫자 (+, 공백, 하이픈은 제거)
func NewWhatsAppExporter(number string, messages *i18n.Bundle) *WhatsAppExporter {
	return &WhatsAppExporter{
		number:   normalizeNumber(number),
		messages: messages,
	}
}

// Export 요약 메시지와 딥링크 생성
func (e *WhatsAppExporter) Export(ctx context.Context, summary domain.OrderSummary) (domain.ExportReceipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExportReceipt{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	if e.number == "" {
		return domain.ExportReceipt{}, fmt.Errorf("%w: destination number not configured", ErrExportFailed)
	}
	if len(summary.Lines) == 0 {
		return domain.ExportReceipt{}, fmt.Errorf("%w: empty order", ErrExportFailed)
	}

	msg := e.FormatMessage(summary)
	return domain.ExportReceipt{
		Channel: ChannelWhatsApp,
		URL:     "https://wa.me/" + e.number + "?text=" + url.QueryEscape(msg),
		Message: msg,
	}, nil
}

// FormatMessage 사람이 읽을 수 있는 주문 요약
func (e *WhatsAppExporter) FormatMessage(s domain.OrderSummary) string {
	locale := i18n.Normalize(s.Locale)
	t := func(key string, args ...interface{}) string {
		return e.messages.T(locale, key, args...)
	}

	var b strings.Builder
	b.WriteString(t("order.header", s.StoreName))
	b.WriteString("\n")
	if s.Reference != "" {
		b.WriteString(t("order.reference", s.Reference))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, l := range s.Lines {
		b.WriteString(t("order.line", l.Name, l.Unit, l.Quantity, money(l.Subtotal), s.Currency))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t("order.subtotal", money(s.Totals.Subtotal), s.Currency))
	b.WriteString("\n")
	b.WriteString(t("order.delivery", money(s.Totals.DeliveryFee), s.Currency))
	b.WriteString("\n")
	b.WriteString(t("order.total", money(s.Totals.GrandTotal), s.Currency))
	b.WriteString("\n")
	b.WriteString(t("order.points", s.PointsEarned))
	return b.String()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func normalizeNumber(n string) string {
	var b strings.Builder
	for _, r := range n {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
