package sale

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerLedger debits the canonical loyalty record when a sale
// settles, and credits it back when a later settlement step fails.
// Implemented by the customer module.
type CustomerLedger interface {
	DebitLoyalty(ctx context.Context, id string, points int) error
	DebitGiftCard(ctx context.Context, id string, amount decimal.Decimal) error
	CreditLoyalty(ctx context.Context, id string, points int) error
	CreditGiftCard(ctx context.Context, id string, amount decimal.Decimal) error
}

// Service defines sale settlement and lookup business logic.
type Service interface {
	// Record persists a completed sale and debits the customer's
	// loyalty points and gift-card balance.
	Record(ctx context.Context, req RecordSaleRequest) (*Sale, error)
	GetSale(ctx context.Context, id string) (*Sale, error)
	ListSales(ctx context.Context, day string) ([]*Sale, error)
}

type service struct {
	repo      Repository
	customers CustomerLedger
	metrics   *Metrics
	currency  string
}

// NewService creates a new sale service. metrics may be nil.
func NewService(repo Repository, customers CustomerLedger, metrics *Metrics) Service {
	return &service{repo: repo, customers: customers, metrics: metrics, currency: "GBP"}
}

func (s *service) Record(ctx context.Context, req RecordSaleRequest) (*Sale, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("sale must contain at least one item")
	}
	switch req.PaymentMethod {
	case "CASH", "CARD":
	default:
		return nil, fmt.Errorf("invalid payment_method: %s (allowed: CASH, CARD)", req.PaymentMethod)
	}
	if req.FinalTotal.IsNegative() || req.GrossTotal.IsNegative() {
		return nil, fmt.Errorf("totals must not be negative")
	}
	if (req.RedeemedPoints > 0 || req.GiftCardApplied.IsPositive()) && req.CustomerID == nil {
		return nil, fmt.Errorf("customer_id is required when points or gift card balance were used")
	}

	// Debit the loyalty record first: a failed debit (stale points
	// snapshot, spent balance) must abort the sale before anything is
	// written. A debit that succeeded is credited back when a later
	// step fails, so an aborted settlement never strands points or
	// balance.
	if req.CustomerID != nil {
		id := req.CustomerID.String()
		if err := s.customers.DebitLoyalty(ctx, id, req.RedeemedPoints); err != nil {
			return nil, fmt.Errorf("debit loyalty points: %w", err)
		}
		if err := s.customers.DebitGiftCard(ctx, id, req.GiftCardApplied); err != nil {
			if rerr := s.customers.CreditLoyalty(ctx, id, req.RedeemedPoints); rerr != nil {
				return nil, fmt.Errorf("debit gift card: %w (loyalty refund also failed: %v)", err, rerr)
			}
			return nil, fmt.Errorf("debit gift card: %w", err)
		}
	}

	sl := &Sale{
		ID:              uuid.New(),
		SaleNumber:      newSaleNumber(),
		SessionID:       req.SessionID,
		CashierID:       req.CashierID,
		CustomerID:      req.CustomerID,
		TabID:           req.TabID,
		OrderType:       req.OrderType,
		PaymentMethod:   req.PaymentMethod,
		GrossTotal:      req.GrossTotal,
		DiscountAmount:  req.DiscountAmount,
		GiftCardApplied: req.GiftCardApplied,
		FinalTotal:      req.FinalTotal,
		CashTendered:    req.CashTendered,
		ChangeGiven:     req.ChangeGiven,
		RedeemedPoints:  req.RedeemedPoints,
		Currency:        s.currency,
		CreatedAt:       time.Now(),
	}
	for _, item := range req.Items {
		si := &SaleItem{
			ID:          uuid.New(),
			SaleID:      sl.ID,
			ProductID:   item.ProductID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			Notes:       item.Notes,
			Redeemed:    item.Redeemed,
			PointsSpent: item.PointsSpent,
		}
		for _, ex := range item.Extras {
			si.Extras = append(si.Extras, SaleExtra{
				ID:         uuid.New(),
				SaleItemID: si.ID,
				ProductID:  ex.ProductID,
				Name:       ex.Name,
				UnitPrice:  ex.UnitPrice,
			})
		}
		sl.Items = append(sl.Items, si)
	}

	if err := s.repo.Create(ctx, sl); err != nil {
		if req.CustomerID != nil {
			if rerr := s.refundDebits(ctx, req.CustomerID.String(), req); rerr != nil {
				return nil, fmt.Errorf("persist sale: %w (refund also failed: %v)", err, rerr)
			}
		}
		return nil, fmt.Errorf("persist sale: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SalesCompleted.WithLabelValues(sl.PaymentMethod).Inc()
		s.metrics.PointsRedeemed.Add(float64(sl.RedeemedPoints))
	}
	return sl, nil
}

// refundDebits returns the customer's points and gift-card balance
// after a settlement step failed past the debits.
func (s *service) refundDebits(ctx context.Context, id string, req RecordSaleRequest) error {
	if err := s.customers.CreditLoyalty(ctx, id, req.RedeemedPoints); err != nil {
		return err
	}
	return s.customers.CreditGiftCard(ctx, id, req.GiftCardApplied)
}

func (s *service) GetSale(ctx context.Context, id string) (*Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListSales(ctx context.Context, day string) ([]*Sale, error) {
	return s.repo.List(ctx, day)
}

// newSaleNumber generates a human-readable receipt number.
func newSaleNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("S-%s-%s", time.Now().Format("20060102"), suffix)
}
