package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/exporter"
)

// CheckoutService 장바구니를 주문 요약으로 만들어 외부 채널로 전달한다
type CheckoutService struct {
	pricing   Pricing
	exporter  exporter.OrderExporter
	events    *plugin.EventBus
	logger    plugin.Logger
	storeName string
	newRef    func() string
	now       func() time.Time
}

// NewCheckoutService 생성자
func NewCheckoutService(pricing Pricing, exp exporter.OrderExporter, events *plugin.EventBus, logger plugin.Logger, storeName string) *CheckoutService {
	return &CheckoutService{
		pricing:   pricing,
		exporter:  exp,
		events:    events,
		logger:    logger,
		storeName: storeName,
		newRef:    func() string { return uuid.NewString()[:8] },
		now:       time.Now,
	}
}

// Checkout 주문 전달.
// 빈 장바구니는 아무것도 하지 않는다. 전달에 실패하면 장바구니와 포인트는 그대로다.
// 성공하면 장바구니를 비우고 floor(총액/기준)만큼 포인트를 적립한다.
func (c *CheckoutService) Checkout(ctx context.Context, sess *Session) (*domain.CheckoutResult, error) {
	var (
		summary domain.OrderSummary
		receipt domain.ExportReceipt
	)
	locale := sess.Locale()

	awarded, balance, exported, err := sess.Checkout(func(lines []domain.CartLine) (int64, error) {
		summary = c.buildSummary(lines, string(locale))
		r, err := c.exporter.Export(ctx, summary)
		if err != nil {
			return 0, err
		}
		receipt = r
		return summary.PointsEarned, nil
	})
	if err != nil {
		checkoutsTotal.WithLabelValues("failed").Inc()
		c.logger.Error("checkout for %s failed: %v", sess.ClientID(), err)
		return nil, err
	}
	if !exported {
		checkoutsTotal.WithLabelValues("empty").Inc()
		return &domain.CheckoutResult{Exported: false, PointsBalance: balance}, nil
	}

	checkoutsTotal.WithLabelValues("exported").Inc()
	pointsAwarded.Add(float64(awarded))
	c.logger.Info("order %s exported for %s: total=%s points=%d", summary.Reference, sess.ClientID(), summary.Totals.GrandTotal, awarded)

	if c.events != nil {
		c.events.Publish(EventSource, TopicOrderExported, map[string]interface{}{
			"client_id": sess.ClientID(),
			"locale":    string(locale),
			"reference": summary.Reference,
			"points":    awarded,
		})
	}

	return &domain.CheckoutResult{
		Exported:      true,
		Summary:       &summary,
		Receipt:       &receipt,
		PointsAwarded: awarded,
		PointsBalance: balance,
	}, nil
}

// Preview 전달 없이 현재 장바구니의 주문 요약 생성
func (c *CheckoutService) Preview(sess *Session) domain.OrderSummary {
	return c.buildSummary(sess.Lines(), string(sess.Locale()))
}

func (c *CheckoutService) buildSummary(lines []domain.CartLine, locale string) domain.OrderSummary {
	totals := c.pricing.Totals(lines)
	out := make([]domain.OrderLine, len(lines))
	for i := range lines {
		price := ComputeLine(&lines[i])
		out[i] = domain.OrderLine{
			ProductID:      lines[i].ProductID,
			Name:           lines[i].Snapshot.Name,
			Unit:           lines[i].SelectedUnit,
			Quantity:       lines[i].Quantity,
			UnitPrice:      lines[i].UnitPrice,
			EffectivePrice: price.EffectivePrice,
			Subtotal:       price.Subtotal,
		}
	}
	return domain.OrderSummary{
		Reference:    c.newRef(),
		StoreName:    c.storeName,
		Currency:     c.pricing.Currency,
		Lines:        out,
		Totals:       totals,
		PointsEarned: c.pricing.Points(totals.GrandTotal),
		Locale:       locale,
		CreatedAt:    c.now(),
	}
}
