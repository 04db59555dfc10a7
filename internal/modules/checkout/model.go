package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType selects which of the two stored prices is active for every
// line item and extra in a session. Switching never mutates prices,
// only which one is read.
type OrderType string

const (
	OrderEatIn    OrderType = "EAT_IN"
	OrderTakeAway OrderType = "TAKE_AWAY"
)

// PaymentMethod represents how the customer intends to settle the sale.
type PaymentMethod string

const (
	PayCash PaymentMethod = "CASH"
	PayCard PaymentMethod = "CARD"
)

// ProductDetails is the slice of a catalog product the cart needs when a
// line item or extra is created. Prices are copied onto the item at add
// time so later catalog edits don't shift an open order.
type ProductDetails struct {
	ProductID      uuid.UUID
	Name           string
	PriceEatIn     decimal.Decimal
	PriceTakeAway  decimal.Decimal
	IsRedeemable   bool
	PointsToRedeem int
}

// ExtraItem is a modifier attached to a line item, carrying its own
// dual pricing.
type ExtraItem struct {
	InstanceID    uuid.UUID       `json:"instance_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	PriceEatIn    decimal.Decimal `json:"price_eat_in"`
	PriceTakeAway decimal.Decimal `json:"price_take_away"`
}

// ActivePrice returns the extra's price under the given order type.
func (e *ExtraItem) ActivePrice(orderType OrderType) decimal.Decimal {
	if orderType == OrderTakeAway {
		return e.PriceTakeAway
	}
	return e.PriceEatIn
}

// LineItem is one entry in the cart. Its InstanceID is minted when the
// item is added and is distinct from catalog identity, so the same
// product can appear as multiple independent lines.
type LineItem struct {
	InstanceID     uuid.UUID       `json:"instance_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	PriceEatIn     decimal.Decimal `json:"price_eat_in"`
	PriceTakeAway  decimal.Decimal `json:"price_take_away"`
	Notes          string          `json:"notes,omitempty"`
	Extras         []ExtraItem     `json:"extras,omitempty"`
	IsRedeemable   bool            `json:"is_redeemable"`
	PointsToRedeem int             `json:"points_to_redeem,omitempty"`
	IsRedeemed     bool            `json:"is_redeemed"`
}

// ActivePrice returns the item's unit price (excluding extras) under the
// given order type.
func (li *LineItem) ActivePrice(orderType OrderType) decimal.Decimal {
	if orderType == OrderTakeAway {
		return li.PriceTakeAway
	}
	return li.PriceEatIn
}

// UnitPrice returns the item's unit price including all its extras under
// the given order type.
func (li *LineItem) UnitPrice(orderType OrderType) decimal.Decimal {
	price := li.ActivePrice(orderType)
	for i := range li.Extras {
		price = price.Add(li.Extras[i].ActivePrice(orderType))
	}
	return price
}

// CustomerRef is the loyalty snapshot attached to a session. The core
// never mutates the canonical customer record; points and balance are
// only debited downstream when the sale completes.
type CustomerRef struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	LoyaltyPoints   int             `json:"loyalty_points"`
	GiftCardBalance decimal.Decimal `json:"gift_card_balance"`
}

// Session is the full state of one open order at a register: the cart,
// pricing inputs, redemption state, gift-card application, and payment
// fields. Everything derived (totals, change due, completability) is
// recomputed from this structure on demand and never stored.
type Session struct {
	ID             uuid.UUID     `json:"id"`
	CashierID      *uuid.UUID    `json:"cashier_id,omitempty"`
	TabID          *uuid.UUID    `json:"tab_id,omitempty"`
	OrderType      OrderType     `json:"order_type"`
	Items          []*LineItem   `json:"items"`
	Customer       *CustomerRef  `json:"customer,omitempty"`
	DiscountInput  string        `json:"discount_input"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	CashTendered   string        `json:"cash_tendered"`
	GiftCardActive bool          `json:"gift_card_active"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewSession creates an empty session with default order type and
// payment method.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:            uuid.New(),
		OrderType:     OrderEatIn,
		PaymentMethod: PayCash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Totals is the money breakdown derived from a session's current state.
type Totals struct {
	GrossTotal      decimal.Decimal `json:"gross_total"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	RemainingTotal  decimal.Decimal `json:"remaining_total"`
	GiftCardApplied decimal.Decimal `json:"gift_card_applied"`
	FinalTotal      decimal.Decimal `json:"final_total"`
}

// PaymentState is the derived payment view: whether the sale may be
// charged, and for cash, the change due or the reason it can't proceed.
type PaymentState struct {
	Method        PaymentMethod    `json:"method"`
	ChangeDue     *decimal.Decimal `json:"change_due,omitempty"`
	TenderedError string           `json:"tendered_error,omitempty"`
	Completable   bool             `json:"completable"`
}

// SessionState is the envelope returned to callers after every
// transition: the session plus everything derived from it.
type SessionState struct {
	Session         *Session     `json:"session"`
	Totals          Totals       `json:"totals"`
	Payment         PaymentState `json:"payment"`
	AvailablePoints int          `json:"available_points"`
	// MethodSelectable is false once redemption and gift card cover the
	// whole order, since no further tender is needed.
	MethodSelectable bool `json:"method_selectable"`
}
