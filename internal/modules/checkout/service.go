package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tillpointhq/tillpoint-backend/internal/modules/catalog"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/customer"
	"github.com/tillpointhq/tillpoint-backend/internal/modules/sale"
)

// ProductSource supplies catalog products for AddItem/AddExtra.
type ProductSource interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// CustomerSource supplies loyalty customers for AttachCustomer.
type CustomerSource interface {
	GetCustomer(ctx context.Context, id string) (*customer.Customer, error)
}

// SaleRecorder settles a completable sale downstream: persisting the
// snapshot and debiting loyalty points and gift-card balance.
type SaleRecorder interface {
	Record(ctx context.Context, req sale.RecordSaleRequest) (*sale.Sale, error)
}

// Service defines the checkout business logic: one open session per
// register, mutated one transition at a time.
type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionState, error)
	GetSession(ctx context.Context, sessionID string) (*SessionState, error)
	ClearSession(ctx context.Context, sessionID string) (*SessionState, error)

	AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*SessionState, error)
	ChangeQuantity(ctx context.Context, sessionID, instanceID string, req ChangeQuantityRequest) (*SessionState, error)
	RemoveItem(ctx context.Context, sessionID, instanceID string) (*SessionState, error)
	AddExtra(ctx context.Context, sessionID, instanceID string, req AddExtraRequest) (*SessionState, error)
	RemoveExtra(ctx context.Context, sessionID, instanceID, extraID string) (*SessionState, error)
	UpdateNote(ctx context.Context, sessionID, instanceID string, req UpdateNoteRequest) (*SessionState, error)

	SetOrderType(ctx context.Context, sessionID string, req SetOrderTypeRequest) (*SessionState, error)
	SetDiscount(ctx context.Context, sessionID string, req SetDiscountRequest) (*SessionState, error)
	SetPaymentMethod(ctx context.Context, sessionID string, req SetPaymentMethodRequest) (*SessionState, error)
	SetCashTendered(ctx context.Context, sessionID string, req SetCashTenderedRequest) (*SessionState, error)

	AttachCustomer(ctx context.Context, sessionID string, req AttachCustomerRequest) (*SessionState, error)
	DetachCustomer(ctx context.Context, sessionID string) (*SessionState, error)
	AttachTab(ctx context.Context, sessionID string, req AttachTabRequest) (*SessionState, error)
	DetachTab(ctx context.Context, sessionID string) (*SessionState, error)

	RedeemItem(ctx context.Context, sessionID, instanceID string) (*SessionState, error)
	UnredeemItem(ctx context.Context, sessionID, instanceID string) (*SessionState, error)
	ApplyGiftCard(ctx context.Context, sessionID string) (*SessionState, error)
	RemoveGiftCard(ctx context.Context, sessionID string) (*SessionState, error)

	Charge(ctx context.Context, sessionID string) (*sale.Sale, error)
}

// ── request payloads ──────────────────────────────────────────────────────────

type CreateSessionRequest struct {
	CashierID string `json:"cashier_id,omitempty"`
	OrderType string `json:"order_type,omitempty"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

type ChangeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type AddExtraRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateNoteRequest struct {
	Note string `json:"note"`
}

type SetOrderTypeRequest struct {
	OrderType string `json:"order_type"`
}

type SetDiscountRequest struct {
	Discount string `json:"discount"`
}

type SetPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type SetCashTenderedRequest struct {
	CashTendered string `json:"cash_tendered"`
}

type AttachCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

type AttachTabRequest struct {
	TabID string `json:"tab_id"`
}

// ── service ───────────────────────────────────────────────────────────────────

type service struct {
	store     *SessionStore
	products  ProductSource
	customers CustomerSource
	sales     SaleRecorder
}

// NewService creates a new checkout service.
func NewService(store *SessionStore, products ProductSource, customers CustomerSource, sales SaleRecorder) Service {
	return &service{store: store, products: products, customers: customers, sales: sales}
}

func (s *service) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionState, error) {
	sess := NewSession()
	if req.OrderType != "" {
		ot, err := parseOrderType(req.OrderType)
		if err != nil {
			return nil, err
		}
		sess.OrderType = ot
	}
	if req.CashierID != "" {
		uid, err := uuid.Parse(req.CashierID)
		if err != nil {
			return nil, fmt.Errorf("invalid cashier_id: %w", err)
		}
		sess.CashierID = &uid
	}
	s.store.Put(sess)
	state := sess.State()
	return &state, nil
}

func (s *service) GetSession(ctx context.Context, sessionID string) (*SessionState, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}
	var state SessionState
	if err := s.store.View(id, func(sess *Session) { state = sess.State() }); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *service) ClearSession(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.view(sessionID, func(sess *Session) error {
		sess.Clear()
		return nil
	})
}

func (s *service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*SessionState, error) {
	p, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.AddItem(productDetails(p))
		return nil
	})
}

func (s *service) ChangeQuantity(ctx context.Context, sessionID, instanceID string, req ChangeQuantityRequest) (*SessionState, error) {
	id, err := uuid.Parse(instanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid instance_id: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.ChangeQuantity(id, req.Quantity)
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID, instanceID string) (*SessionState, error) {
	id, err := uuid.Parse(instanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid instance_id: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.RemoveItem(id)
		return nil
	})
}

func (s *service) AddExtra(ctx context.Context, sessionID, instanceID string, req AddExtraRequest) (*SessionState, error) {
	id, err := uuid.Parse(instanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid instance_id: %w", err)
	}
	p, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if !p.IsExtra {
		return nil, fmt.Errorf("product %s is not an extra", p.Name)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.AddExtra(id, productDetails(p))
		return nil
	})
}

func (s *service) RemoveExtra(ctx context.Context, sessionID, instanceID, extraID string) (*SessionState, error) {
	id, err := uuid.Parse(instanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid instance_id: %w", err)
	}
	eid, err := uuid.Parse(extraID)
	if err != nil {
		return nil, fmt.Errorf("invalid extra_id: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.RemoveExtra(id, eid)
		return nil
	})
}

func (s *service) UpdateNote(ctx context.Context, sessionID, instanceID string, req UpdateNoteRequest) (*SessionState, error) {
	id, err := uuid.Parse(instanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid instance_id: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.UpdateNote(id, req.Note)
		return nil
	})
}

func (s *service) SetOrderType(ctx context.Context, sessionID string, req SetOrderTypeRequest) (*SessionState, error) {
	ot, err := parseOrderType(req.OrderType)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.OrderType = ot
		sess.touch()
		return nil
	})
}

func (s *service) SetDiscount(ctx context.Context, sessionID string, req SetDiscountRequest) (*SessionState, error) {
	// The raw text is always accepted; parsing happens inside Totals so
	// bad input degrades to a zero discount instead of an error.
	return s.view(sessionID, func(sess *Session) error {
		sess.DiscountInput = req.Discount
		sess.touch()
		return nil
	})
}

func (s *service) SetPaymentMethod(ctx context.Context, sessionID string, req SetPaymentMethodRequest) (*SessionState, error) {
	var method PaymentMethod
	switch PaymentMethod(req.PaymentMethod) {
	case PayCash, PayCard:
		method = PaymentMethod(req.PaymentMethod)
	default:
		return nil, fmt.Errorf("invalid payment_method: %s (allowed: CASH, CARD)", req.PaymentMethod)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.PaymentMethod = method
		sess.touch()
		return nil
	})
}

func (s *service) SetCashTendered(ctx context.Context, sessionID string, req SetCashTenderedRequest) (*SessionState, error) {
	return s.view(sessionID, func(sess *Session) error {
		sess.CashTendered = req.CashTendered
		sess.touch()
		return nil
	})
}

func (s *service) AttachCustomer(ctx context.Context, sessionID string, req AttachCustomerRequest) (*SessionState, error) {
	c, err := s.customers.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		// Swapping customers invalidates the old one's redemptions and
		// gift-card application.
		sess.resetCustomerState()
		sess.Customer = &CustomerRef{
			ID:              c.ID,
			Name:            c.Name,
			LoyaltyPoints:   c.LoyaltyPoints,
			GiftCardBalance: c.GiftCardBalance,
		}
		sess.touch()
		return nil
	})
}

func (s *service) DetachCustomer(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.view(sessionID, func(sess *Session) error {
		sess.resetCustomerState()
		sess.Customer = nil
		sess.touch()
		return nil
	})
}

func (s *service) AttachTab(ctx context.Context, sessionID string, req AttachTabRequest) (*SessionState, error) {
	tabID, err := uuid.Parse(req.TabID)
	if err != nil {
		return nil, fmt.Errorf("invalid tab_id: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.TabID = &tabID
		sess.touch()
		return nil
	})
}

func (s *service) DetachTab(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.view(sessionID, func(sess *Session) error {
		// Detaching starts a fresh cart; the tab's history lives elsewhere.
		sess.Clear()
		sess.TabID = nil
		return nil
	})
}

func (s *service) RedeemItem(ctx context.Context, sessionID, instanceID string) (*SessionState, error) {
	id, err := uuid.Parse(instanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid instance_id: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.RedeemItem(id)
		return nil
	})
}

func (s *service) UnredeemItem(ctx context.Context, sessionID, instanceID string) (*SessionState, error) {
	id, err := uuid.Parse(instanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid instance_id: %w", err)
	}
	return s.view(sessionID, func(sess *Session) error {
		sess.UnredeemItem(id)
		return nil
	})
}

func (s *service) ApplyGiftCard(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.view(sessionID, func(sess *Session) error {
		sess.ApplyGiftCard()
		return nil
	})
}

func (s *service) RemoveGiftCard(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.view(sessionID, func(sess *Session) error {
		sess.RemoveGiftCard()
		return nil
	})
}

func (s *service) Charge(ctx context.Context, sessionID string) (*sale.Sale, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}

	var req sale.RecordSaleRequest
	err = s.store.Update(id, func(sess *Session) error {
		if len(sess.Items) == 0 {
			return fmt.Errorf("cannot charge an empty cart")
		}
		payment := sess.PaymentState()
		if !payment.Completable {
			if payment.TenderedError != "" {
				return fmt.Errorf("sale is not completable: %s", payment.TenderedError)
			}
			return fmt.Errorf("sale is not completable")
		}
		req = buildSaleRequest(sess, payment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	recorded, err := s.sales.Record(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store.Delete(id)
	return recorded, nil
}

// view applies fn to a session under the store lock and returns the
// derived state afterwards.
func (s *service) view(sessionID string, fn func(*Session) error) (*SessionState, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}
	var state SessionState
	err = s.store.Update(id, func(sess *Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		state = sess.State()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// resetCustomerState drops everything that only makes sense with the
// current customer attached: redemptions and the gift-card application.
func (s *Session) resetCustomerState() {
	for _, li := range s.Items {
		li.IsRedeemed = false
	}
	s.GiftCardActive = false
}

func parseOrderType(raw string) (OrderType, error) {
	switch OrderType(raw) {
	case OrderEatIn, OrderTakeAway:
		return OrderType(raw), nil
	default:
		return "", fmt.Errorf("invalid order_type: %s (allowed: EAT_IN, TAKE_AWAY)", raw)
	}
}

func productDetails(p *catalog.Product) ProductDetails {
	return ProductDetails{
		ProductID:      p.ID,
		Name:           p.Name,
		PriceEatIn:     p.PriceEatIn,
		PriceTakeAway:  p.PriceTakeAway,
		IsRedeemable:   p.IsRedeemable,
		PointsToRedeem: p.PointsToRedeem,
	}
}

func buildSaleRequest(sess *Session, payment PaymentState) sale.RecordSaleRequest {
	totals := sess.Totals()

	req := sale.RecordSaleRequest{
		SessionID:       sess.ID,
		CashierID:       sess.CashierID,
		TabID:           sess.TabID,
		OrderType:       string(sess.OrderType),
		PaymentMethod:   string(sess.PaymentMethod),
		GrossTotal:      totals.GrossTotal,
		DiscountAmount:  totals.DiscountAmount,
		GiftCardApplied: totals.GiftCardApplied,
		FinalTotal:      totals.FinalTotal,
		RedeemedPoints:  sess.RedeemedPoints(),
	}
	if sess.Customer != nil {
		cid := sess.Customer.ID
		req.CustomerID = &cid
	}
	if sess.PaymentMethod == PayCash {
		if tendered := ParseAmount(sess.CashTendered); tendered.Valid {
			req.CashTendered = tendered.Value
		}
		if payment.ChangeDue != nil {
			req.ChangeGiven = *payment.ChangeDue
		}
	}

	for _, li := range sess.Items {
		item := sale.RecordSaleItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice(sess.OrderType),
			Notes:     li.Notes,
			Redeemed:  li.IsRedeemed,
		}
		if li.IsRedeemed {
			item.PointsSpent = li.PointsToRedeem
		} else {
			item.LineTotal = item.UnitPrice.Mul(decimalFromInt(li.Quantity))
		}
		for i := range li.Extras {
			ex := &li.Extras[i]
			item.Extras = append(item.Extras, sale.RecordSaleExtra{
				ProductID: ex.ProductID,
				Name:      ex.Name,
				UnitPrice: ex.ActivePrice(sess.OrderType),
			})
		}
		req.Items = append(req.Items, item)
	}
	return req
}
