package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalsSingleItemWithDiscount(t *testing.T) {
	s := NewSession()
	p := ProductDetails{
		ProductID:     uuid.New(),
		Name:          "Fish & Chips",
		PriceEatIn:    dec("10.00"),
		PriceTakeAway: dec("9.00"),
	}
	li := s.AddItem(p)
	s.ChangeQuantity(li.InstanceID, 2)
	s.DiscountInput = "10"

	totals := s.Totals()
	requireAmount(t, "20.00", totals.GrossTotal)
	requireAmount(t, "2.00", totals.DiscountAmount)
	requireAmount(t, "18.00", totals.RemainingTotal)
	requireAmount(t, "18.00", totals.FinalTotal)
}

func TestTotalsOrderTypeSwitch(t *testing.T) {
	s := NewSession()
	li := s.AddItem(coffee()) // 3.50 eat-in / 3.20 takeaway
	s.AddExtra(li.InstanceID, oatMilk())

	requireAmount(t, "4.00", s.Totals().GrossTotal)

	// Switching order type re-reads every price; nothing else changes.
	s.OrderType = OrderTakeAway
	requireAmount(t, "3.60", s.Totals().GrossTotal)
	assert.Equal(t, 1, li.Quantity)

	s.OrderType = OrderEatIn
	requireAmount(t, "4.00", s.Totals().GrossTotal)
}

func TestTotalsExtrasMultiplyByQuantity(t *testing.T) {
	s := NewSession()
	li := s.AddItem(coffee())
	s.AddExtra(li.InstanceID, oatMilk())
	s.ChangeQuantity(li.InstanceID, 3)

	// (3.50 + 0.50) * 3
	requireAmount(t, "12.00", s.Totals().GrossTotal)
}

func TestTotalsRedeemedItemContributesZero(t *testing.T) {
	s := NewSession()
	withCustomer(s, 100, "0")
	s.AddItem(coffee())
	li := s.AddItem(cake(100))
	require.True(t, s.RedeemItem(li.InstanceID))

	requireAmount(t, "3.50", s.Totals().GrossTotal)

	require.True(t, s.UnredeemItem(li.InstanceID))
	requireAmount(t, "7.50", s.Totals().GrossTotal)
}

func TestTotalsInvariantUnderReordering(t *testing.T) {
	build := func(order []ProductDetails) *Session {
		s := NewSession()
		s.DiscountInput = "15"
		for _, p := range order {
			s.AddItem(p)
		}
		return s
	}
	a, b, c := coffee(), cake(50), oatMilk()

	t1 := build([]ProductDetails{a, b, c}).Totals()
	t2 := build([]ProductDetails{c, a, b}).Totals()

	requireAmount(t, t1.GrossTotal.String(), t2.GrossTotal)
	requireAmount(t, t1.FinalTotal.String(), t2.FinalTotal)
}

func TestTotalsDiscountRoundsToPence(t *testing.T) {
	s := NewSession()
	s.AddItem(ProductDetails{
		ProductID:     uuid.New(),
		Name:          "Lamb Shank",
		PriceEatIn:    dec("19.99"),
		PriceTakeAway: dec("19.99"),
	})
	s.DiscountInput = "15"

	// 19.99 * 15% = 2.9985, rounded to 3.00 at currency precision.
	totals := s.Totals()
	requireAmount(t, "3.00", totals.DiscountAmount)
	requireAmount(t, "16.99", totals.FinalTotal)
}

func TestTotalsDiscountNeverExceedsGross(t *testing.T) {
	for _, raw := range []string{"-50", "abc", "100", "250", ""} {
		s := NewSession()
		s.AddItem(coffee())
		s.DiscountInput = raw

		totals := s.Totals()
		assert.False(t, totals.DiscountAmount.GreaterThan(totals.GrossTotal),
			"discount %q exceeded gross", raw)
		assert.False(t, totals.RemainingTotal.IsNegative())
	}
}

func TestTotalsEmptyCart(t *testing.T) {
	s := NewSession()
	s.DiscountInput = "50"

	totals := s.Totals()
	requireAmount(t, "0", totals.GrossTotal)
	requireAmount(t, "0", totals.FinalTotal)
}
