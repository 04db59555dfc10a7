package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a loyalty-program member. The checkout core only reads
// this record; points and gift-card balance are debited here when a
// sale completes.
type Customer struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	LoyaltyPoints   int             `json:"loyalty_points"`
	GiftCardBalance decimal.Decimal `json:"gift_card_balance"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateCustomerRequest is the payload for registering a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// AdjustPointsRequest is the payload for granting loyalty points.
type AdjustPointsRequest struct {
	Points int `json:"points"`
}

// LoadGiftCardRequest is the payload for topping up a gift card.
type LoadGiftCardRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
