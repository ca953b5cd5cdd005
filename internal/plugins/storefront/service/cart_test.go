package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

func TestCart_Add(t *testing.T) {
	t.Run("같은 상품, 다른 단위는 별도 라인", func(t *testing.T) {
		cart := NewCart()
		a, createdA, err := cart.Add(burger(), domain.UnitPrimary)
		require.NoError(t, err)
		b, createdB, err := cart.Add(burger(), domain.UnitSecondary)
		require.NoError(t, err)

		assert.True(t, createdA)
		assert.True(t, createdB)
		assert.NotEqual(t, a.LineID, b.LineID)
		assert.Equal(t, "1-كيس", a.LineID)
		assert.Equal(t, "1-كرتون", b.LineID)
		assert.Len(t, cart.Lines(), 2)
	})

	t.Run("같은 상품+단위 재추가는 수량 증가", func(t *testing.T) {
		cart := NewCart()
		_, _, err := cart.Add(burger(), domain.UnitPrimary)
		require.NoError(t, err)
		line, created, err := cart.Add(burger(), domain.UnitPrimary)
		require.NoError(t, err)

		assert.False(t, created)
		assert.Equal(t, 2, line.Quantity)
		assert.Len(t, cart.Lines(), 1)
	})

	t.Run("재추가 시 가격 재계산 없음", func(t *testing.T) {
		cart := NewCart()
		p := burger()
		_, _, err := cart.Add(p, domain.UnitPrimary)
		require.NoError(t, err)

		p.Price = dec("60")
		p.DiscountPercent = nil
		line, _, err := cart.Add(p, domain.UnitPrimary)
		require.NoError(t, err)
		assert.Equal(t, "45", line.UnitPrice.String())
		assert.Equal(t, 10, line.DiscountPercent)
	})

	t.Run("유효하지 않은 선택은 라인 생성 안 함", func(t *testing.T) {
		cart := NewCart()
		_, _, err := cart.Add(oil(), domain.UnitSecondary)
		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("스냅샷 고정", func(t *testing.T) {
		cart := NewCart()
		p := burger()
		_, _, _ = cart.Add(p, domain.UnitPrimary)
		p.Name = "changed"

		lines := cart.Lines()
		assert.Equal(t, "برجر بقري أمريكانا", lines[0].Snapshot.Name)
		assert.Equal(t, "كيس", lines[0].PrimaryUnit)
	})
}

func TestCart_FrozenPricing(t *testing.T) {
	cart := NewCart()
	p := oil()
	p.Price = dec("45")
	line, _, err := cart.Add(p, domain.UnitPrimary)
	require.NoError(t, err)

	// 카탈로그 가격 변경
	p.Price = dec("60")

	lines := cart.Lines()
	assert.Equal(t, "45", ComputeLine(&lines[0]).EffectivePrice.String())
	assert.Equal(t, line.LineID, lines[0].LineID)
}

func TestCart_ChangeQuantity(t *testing.T) {
	t.Run("증가/감소", func(t *testing.T) {
		cart := NewCart()
		line, _, _ := cart.Add(oil(), domain.UnitPrimary)

		updated := cart.ChangeQuantity(line.LineID, 1)
		require.NotNil(t, updated)
		assert.Equal(t, 2, updated.Quantity)

		updated = cart.ChangeQuantity(line.LineID, -1)
		require.NotNil(t, updated)
		assert.Equal(t, 1, updated.Quantity)
	})

	t.Run("수량 1에서 감소하면 라인 제거, 이후 감소는 no-op", func(t *testing.T) {
		cart := NewCart()
		line, _, _ := cart.Add(oil(), domain.UnitPrimary)

		assert.Nil(t, cart.ChangeQuantity(line.LineID, -1))
		assert.True(t, cart.IsEmpty())
		_, ok := cart.Line(line.LineID)
		assert.False(t, ok)

		assert.Nil(t, cart.ChangeQuantity(line.LineID, -1))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("큰 음수도 제거", func(t *testing.T) {
		cart := NewCart()
		line, _, _ := cart.Add(oil(), domain.UnitPrimary)
		cart.ChangeQuantity(line.LineID, 4)
		assert.Nil(t, cart.ChangeQuantity(line.LineID, -10))
		assert.Zero(t, cart.ItemCount())
	})

	t.Run("연속 호출은 각각 반영", func(t *testing.T) {
		cart := NewCart()
		line, _, _ := cart.Add(oil(), domain.UnitPrimary)
		for i := 0; i < 5; i++ {
			cart.ChangeQuantity(line.LineID, 1)
		}
		assert.Equal(t, 6, cart.ItemCount())
	})

	t.Run("큰 양수는 라인을 지우지 않고 최대 수량에서 멈춤", func(t *testing.T) {
		cart := NewCart()
		line, _, _ := cart.Add(burger(), domain.UnitPrimary)

		updated := cart.ChangeQuantity(line.LineID, math.MaxInt)
		require.NotNil(t, updated)
		assert.Equal(t, domain.MaxLineQuantity, updated.Quantity)
		assert.Len(t, cart.Lines(), 1)

		again, created, err := cart.Add(burger(), domain.UnitPrimary)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, domain.MaxLineQuantity, again.Quantity)
	})

	t.Run("가장 작은 음수는 제거", func(t *testing.T) {
		cart := NewCart()
		line, _, _ := cart.Add(burger(), domain.UnitPrimary)
		assert.Nil(t, cart.ChangeQuantity(line.LineID, math.MinInt))
		assert.True(t, cart.IsEmpty())
	})
}

func TestCart_RemoveAndOrder(t *testing.T) {
	cart := NewCart()
	a, _, _ := cart.Add(burger(), domain.UnitPrimary)
	b, _, _ := cart.Add(oil(), domain.UnitPrimary)
	c, _, _ := cart.Add(burger(), domain.UnitSecondary)

	assert.True(t, cart.Remove(b.LineID))
	assert.False(t, cart.Remove(b.LineID))
	assert.False(t, cart.Remove("missing"))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, a.LineID, lines[0].LineID)
	assert.Equal(t, c.LineID, lines[1].LineID)

	// 재추가된 라인은 맨 뒤에 붙는다
	_, created, _ := cart.Add(oil(), domain.UnitPrimary)
	assert.True(t, created)
	assert.Equal(t, b.LineID, cart.Lines()[2].LineID)
}

func TestCart_QuantityFor(t *testing.T) {
	cart := NewCart()
	_, _, _ = cart.Add(burger(), domain.UnitPrimary)
	_, _, _ = cart.Add(burger(), domain.UnitPrimary)
	_, _, _ = cart.Add(burger(), domain.UnitSecondary)

	assert.Equal(t, 2, cart.QuantityFor(burger(), domain.UnitPrimary))
	assert.Equal(t, 1, cart.QuantityFor(burger(), domain.UnitSecondary))
	assert.Equal(t, 0, cart.QuantityFor(oil(), domain.UnitPrimary))
	assert.Equal(t, 0, cart.QuantityFor(oil(), domain.UnitSecondary))
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	_, _, _ = cart.Add(burger(), domain.UnitPrimary)
	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.ItemCount())

	_, created, _ := cart.Add(burger(), domain.UnitPrimary)
	assert.True(t, created)
}

func TestCart_LinesAreCopies(t *testing.T) {
	cart := NewCart()
	_, _, _ = cart.Add(oil(), domain.UnitPrimary)
	lines := cart.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, cart.ItemCount())
}
