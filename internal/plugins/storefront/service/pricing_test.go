package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

func TestResolveUnitPrice(t *testing.T) {
	t.Run("기본 단위 - 할인 적용 대상", func(t *testing.T) {
		res, err := ResolveUnitPrice(burger(), domain.UnitPrimary)
		require.NoError(t, err)
		assert.Equal(t, "كيس", res.Unit)
		assert.True(t, res.UnitPrice.Equal(dec("45")))
		assert.True(t, res.DiscountEligible)
		assert.Equal(t, 10, res.DiscountPercent)
	})

	t.Run("보조 단위 - 할인 미적용", func(t *testing.T) {
		res, err := ResolveUnitPrice(burger(), domain.UnitSecondary)
		require.NoError(t, err)
		assert.Equal(t, "كرتون", res.Unit)
		assert.True(t, res.UnitPrice.Equal(dec("250")))
		assert.False(t, res.DiscountEligible)
		assert.Zero(t, res.DiscountPercent)
	})

	t.Run("할인율 0은 할인 대상 아님", func(t *testing.T) {
		p := burger()
		p.DiscountPercent = intp(0)
		res, err := ResolveUnitPrice(p, domain.UnitPrimary)
		require.NoError(t, err)
		assert.False(t, res.DiscountEligible)
	})

	t.Run("보조 단위 없는 상품에 보조 단위 선택", func(t *testing.T) {
		_, err := ResolveUnitPrice(oil(), domain.UnitSecondary)
		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
	})

	t.Run("알 수 없는 선택값", func(t *testing.T) {
		_, err := ResolveUnitPrice(oil(), domain.UnitSelection("pallet"))
		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
	})
}

func TestComputeLine_DiscountScoping(t *testing.T) {
	cart := NewCart()

	primary, _, err := cart.Add(burger(), domain.UnitPrimary)
	require.NoError(t, err)
	secondary, _, err := cart.Add(burger(), domain.UnitSecondary)
	require.NoError(t, err)

	assert.Equal(t, "40.5", ComputeLine(&primary).EffectivePrice.String())
	assert.Equal(t, "250", ComputeLine(&secondary).EffectivePrice.String())
}

func TestComputeLine_NoDoubleDiscountOnSecondary(t *testing.T) {
	// 할인율이 라인에 있어도 선택 단위가 기본 단위가 아니면 적용되지 않는다
	line := domain.CartLine{
		SelectedUnit:    "كرتون",
		PrimaryUnit:     "كيس",
		UnitPrice:       dec("250"),
		DiscountPercent: 10,
		Quantity:        3,
	}
	price := ComputeLine(&line)
	assert.Equal(t, "250", price.EffectivePrice.String())
	assert.Equal(t, "750", price.Subtotal.String())
}

func TestComputeCartTotals(t *testing.T) {
	t.Run("라인 1개, 수량 2, 배송비 15", func(t *testing.T) {
		cart := NewCart()
		_, _, err := cart.Add(burger(), domain.UnitPrimary)
		require.NoError(t, err)
		_, _, err = cart.Add(burger(), domain.UnitPrimary)
		require.NoError(t, err)

		totals := ComputeCartTotals(cart.Lines(), decimal.NewFromInt(15))
		assert.Equal(t, 2, totals.ItemCount)
		assert.Equal(t, "81", totals.Subtotal.String())
		assert.Equal(t, "96", totals.GrandTotal.String())
		assert.Equal(t, int64(9), LoyaltyPointsEarned(totals.GrandTotal, 10))
	})

	t.Run("여러 라인 합산", func(t *testing.T) {
		cart := NewCart()
		_, _, _ = cart.Add(burger(), domain.UnitSecondary)
		_, _, _ = cart.Add(oil(), domain.UnitPrimary)
		_, _, _ = cart.Add(oil(), domain.UnitPrimary)

		totals := ComputeCartTotals(cart.Lines(), decimal.NewFromInt(15))
		assert.Equal(t, 3, totals.ItemCount)
		assert.Equal(t, "440", totals.Subtotal.String())
		assert.Equal(t, "455", totals.GrandTotal.String())
	})

	t.Run("빈 장바구니", func(t *testing.T) {
		totals := ComputeCartTotals(nil, decimal.NewFromInt(15))
		assert.Zero(t, totals.ItemCount)
		assert.True(t, totals.Subtotal.IsZero())
		assert.Equal(t, "15", totals.GrandTotal.String())
	})
}

func TestLoyaltyPointsEarned(t *testing.T) {
	tests := []struct {
		total   string
		divisor int64
		want    int64
	}{
		{"96", 10, 9},
		{"9.99", 10, 0},
		{"100", 10, 10},
		{"455", 10, 45},
		{"100", 0, 10}, // 0 이하는 기본값 10
		{"100", 3, 33},
		{"0", 10, 0},
		{"-20", 10, 0},
	}
	for _, tt := range tests {
		got := LoyaltyPointsEarned(dec(tt.total), tt.divisor)
		assert.Equal(t, tt.want, got, "total=%s divisor=%d", tt.total, tt.divisor)
	}
}

func TestPricingView(t *testing.T) {
	pricing := Pricing{DeliveryFee: dec("15"), PointsDivisor: 10, Currency: "SAR"}

	empty := pricing.View(nil)
	assert.Empty(t, empty.Lines)
	assert.Zero(t, empty.PointsToEarn)

	cart := NewCart()
	_, _, _ = cart.Add(burger(), domain.UnitPrimary)
	view := pricing.View(cart.Lines())
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "40.5", view.Lines[0].EffectivePrice.String())
	assert.Equal(t, "55.5", view.Totals.GrandTotal.String())
	assert.Equal(t, int64(5), view.PointsToEarn)
	assert.Equal(t, "SAR", view.Currency)
}
