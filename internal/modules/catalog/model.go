package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an entry in the store catalog. Every product carries two
// price points; which one applies is decided per order at the register.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category"`
	SKU            string          `json:"sku,omitempty"`
	PriceEatIn     decimal.Decimal `json:"price_eat_in"`
	PriceTakeAway  decimal.Decimal `json:"price_take_away"`
	IsExtra        bool            `json:"is_extra"`
	IsRedeemable   bool            `json:"is_redeemable"`
	PointsToRedeem int             `json:"points_to_redeem,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateProductRequest is the payload for adding a catalog product.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category"`
	SKU            string          `json:"sku,omitempty"`
	PriceEatIn     decimal.Decimal `json:"price_eat_in"`
	PriceTakeAway  decimal.Decimal `json:"price_take_away"`
	IsExtra        bool            `json:"is_extra"`
	IsRedeemable   bool            `json:"is_redeemable"`
	PointsToRedeem int             `json:"points_to_redeem,omitempty"`
}
