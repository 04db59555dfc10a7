package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the immutable snapshot of a completed checkout: what was
// sold, how the payable amount was reached, and how it was settled.
// Receipt printing and reporting consume this record downstream.
type Sale struct {
	ID              uuid.UUID       `json:"id"`
	SaleNumber      string          `json:"sale_number"`
	SessionID       uuid.UUID       `json:"session_id"`
	CashierID       *uuid.UUID      `json:"cashier_id,omitempty"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"` // nil for anonymous orders
	TabID           *uuid.UUID      `json:"tab_id,omitempty"`
	OrderType       string          `json:"order_type"`
	PaymentMethod   string          `json:"payment_method"`
	GrossTotal      decimal.Decimal `json:"gross_total"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	GiftCardApplied decimal.Decimal `json:"gift_card_applied"`
	FinalTotal      decimal.Decimal `json:"final_total"`
	CashTendered    decimal.Decimal `json:"cash_tendered"`
	ChangeGiven     decimal.Decimal `json:"change_given"`
	RedeemedPoints  int             `json:"redeemed_points"`
	Currency        string          `json:"currency"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []*SaleItem     `json:"items,omitempty"`
}

// SaleItem is one line of a completed sale.
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Notes       string          `json:"notes,omitempty"`
	Redeemed    bool            `json:"redeemed"`
	PointsSpent int             `json:"points_spent,omitempty"`
	Extras      []SaleExtra     `json:"extras,omitempty"`
}

// SaleExtra is a modifier that was attached to a sale line.
type SaleExtra struct {
	ID         uuid.UUID       `json:"id"`
	SaleItemID uuid.UUID       `json:"sale_item_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// RecordSaleRequest is the settlement payload handed over by checkout
// once a session is completable and the charge is confirmed.
type RecordSaleRequest struct {
	SessionID       uuid.UUID        `json:"session_id"`
	CashierID       *uuid.UUID       `json:"cashier_id,omitempty"`
	CustomerID      *uuid.UUID       `json:"customer_id,omitempty"`
	TabID           *uuid.UUID       `json:"tab_id,omitempty"`
	OrderType       string           `json:"order_type"`
	PaymentMethod   string           `json:"payment_method"`
	GrossTotal      decimal.Decimal  `json:"gross_total"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	GiftCardApplied decimal.Decimal  `json:"gift_card_applied"`
	FinalTotal      decimal.Decimal  `json:"final_total"`
	CashTendered    decimal.Decimal  `json:"cash_tendered"`
	ChangeGiven     decimal.Decimal  `json:"change_given"`
	RedeemedPoints  int              `json:"redeemed_points"`
	Items           []RecordSaleItem `json:"items"`
}

// RecordSaleItem describes one cart line at settlement time.
type RecordSaleItem struct {
	ProductID   uuid.UUID         `json:"product_id"`
	Name        string            `json:"name"`
	Quantity    int               `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	LineTotal   decimal.Decimal   `json:"line_total"`
	Notes       string            `json:"notes,omitempty"`
	Redeemed    bool              `json:"redeemed"`
	PointsSpent int               `json:"points_spent,omitempty"`
	Extras      []RecordSaleExtra `json:"extras,omitempty"`
}

// RecordSaleExtra describes one modifier at settlement time.
type RecordSaleExtra struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
