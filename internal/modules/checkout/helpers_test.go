package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(want)), "want %s, got %s", want, got.String())
}

// coffee is a plain dual-priced product.
func coffee() ProductDetails {
	return ProductDetails{
		ProductID:     uuid.New(),
		Name:          "Flat White",
		PriceEatIn:    dec("3.50"),
		PriceTakeAway: dec("3.20"),
	}
}

// cake is redeemable for loyalty points.
func cake(points int) ProductDetails {
	return ProductDetails{
		ProductID:      uuid.New(),
		Name:           "Carrot Cake",
		PriceEatIn:     dec("4.00"),
		PriceTakeAway:  dec("4.00"),
		IsRedeemable:   true,
		PointsToRedeem: points,
	}
}

func oatMilk() ProductDetails {
	return ProductDetails{
		ProductID:     uuid.New(),
		Name:          "Oat Milk",
		PriceEatIn:    dec("0.50"),
		PriceTakeAway: dec("0.40"),
	}
}

func withCustomer(s *Session, points int, balance string) *CustomerRef {
	s.Customer = &CustomerRef{
		ID:              uuid.New(),
		Name:            "Ada",
		LoyaltyPoints:   points,
		GiftCardBalance: dec(balance),
	}
	return s.Customer
}
