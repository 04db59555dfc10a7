package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemItem(t *testing.T) {
	s := NewSession()
	withCustomer(s, 150, "0")
	li := s.AddItem(cake(100))

	require.True(t, s.RedeemItem(li.InstanceID))
	assert.True(t, li.IsRedeemed)
	assert.Equal(t, 50, s.AvailablePoints())
	assert.Equal(t, 100, s.RedeemedPoints())
}

func TestRedeemItemInsufficientPoints(t *testing.T) {
	s := NewSession()
	withCustomer(s, 50, "0")
	li := s.AddItem(cake(100))

	assert.False(t, s.RedeemItem(li.InstanceID))
	assert.False(t, li.IsRedeemed)
	requireAmount(t, "4.00", s.Totals().GrossTotal)
}

func TestRedeemItemPreconditions(t *testing.T) {
	t.Run("no customer attached", func(t *testing.T) {
		s := NewSession()
		li := s.AddItem(cake(100))
		assert.False(t, s.RedeemItem(li.InstanceID))
	})

	t.Run("not redeemable", func(t *testing.T) {
		s := NewSession()
		withCustomer(s, 500, "0")
		li := s.AddItem(coffee())
		assert.False(t, s.RedeemItem(li.InstanceID))
	})

	t.Run("no point cost configured", func(t *testing.T) {
		s := NewSession()
		withCustomer(s, 500, "0")
		li := s.AddItem(cake(0))
		assert.False(t, s.RedeemItem(li.InstanceID))
	})

	t.Run("already redeemed", func(t *testing.T) {
		s := NewSession()
		withCustomer(s, 100, "0")
		li := s.AddItem(cake(100))
		require.True(t, s.RedeemItem(li.InstanceID))
		assert.False(t, s.RedeemItem(li.InstanceID))
		assert.Equal(t, 100, s.RedeemedPoints(), "points must not be charged twice")
	})
}

func TestRedeemWholeLineRegardlessOfQuantity(t *testing.T) {
	s := NewSession()
	withCustomer(s, 100, "0")
	li := s.AddItem(cake(100))
	s.ChangeQuantity(li.InstanceID, 3)

	// One point cost frees the entire quantity-3 line.
	require.True(t, s.RedeemItem(li.InstanceID))
	requireAmount(t, "0", s.Totals().GrossTotal)
	assert.Equal(t, 100, s.RedeemedPoints())
	assert.Equal(t, 3, li.Quantity)
}

func TestAvailablePointsNeverNegative(t *testing.T) {
	s := NewSession()
	withCustomer(s, 100, "0")
	a := s.AddItem(cake(60))
	b := s.AddItem(cake(60))

	require.True(t, s.RedeemItem(a.InstanceID))
	assert.Equal(t, 40, s.AvailablePoints())

	// Budget too small for the second line.
	assert.False(t, s.RedeemItem(b.InstanceID))
	assert.Equal(t, 40, s.AvailablePoints())

	// Even if the snapshot shrinks underneath us, the derived budget
	// clamps at zero.
	s.Customer.LoyaltyPoints = 10
	assert.Equal(t, 0, s.AvailablePoints())
}

func TestUnredeemRestoresEverything(t *testing.T) {
	s := NewSession()
	withCustomer(s, 100, "0")
	li := s.AddItem(cake(100))
	require.True(t, s.RedeemItem(li.InstanceID))

	require.True(t, s.UnredeemItem(li.InstanceID))
	assert.False(t, li.IsRedeemed)
	assert.Equal(t, 100, s.AvailablePoints())
	requireAmount(t, "4.00", s.Totals().GrossTotal)

	// And the line is mutable again.
	s.ChangeQuantity(li.InstanceID, 2)
	assert.Equal(t, 2, li.Quantity)
}
