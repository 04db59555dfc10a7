package customer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines customer and loyalty business logic.
type Service interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	GrantPoints(ctx context.Context, id string, req AdjustPointsRequest) (*Customer, error)
	LoadGiftCard(ctx context.Context, id string, req LoadGiftCardRequest) (*Customer, error)

	// The debit and credit pairs are invoked by sale settlement, never
	// directly from the register. The credits undo a debit when a later
	// settlement step fails.
	DebitLoyalty(ctx context.Context, id string, points int) error
	DebitGiftCard(ctx context.Context, id string, amount decimal.Decimal) error
	CreditLoyalty(ctx context.Context, id string, points int) error
	CreditGiftCard(ctx context.Context, id string, amount decimal.Decimal) error
}

type service struct{ repo Repository }

// NewService creates a new customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	c := &Customer{
		ID:              uuid.New(),
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		GiftCardBalance: decimal.Zero,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx)
}

func (s *service) GrantPoints(ctx context.Context, id string, req AdjustPointsRequest) (*Customer, error) {
	if req.Points <= 0 {
		return nil, fmt.Errorf("points must be greater than zero")
	}
	if err := s.repo.AddPoints(ctx, id, req.Points); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) LoadGiftCard(ctx context.Context, id string, req LoadGiftCardRequest) (*Customer, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	if err := s.repo.AddGiftCardBalance(ctx, id, req.Amount); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) DebitLoyalty(ctx context.Context, id string, points int) error {
	if points == 0 {
		return nil
	}
	if points < 0 {
		return fmt.Errorf("points must not be negative")
	}
	return s.repo.DebitPoints(ctx, id, points)
}

func (s *service) DebitGiftCard(ctx context.Context, id string, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	return s.repo.DebitGiftCardBalance(ctx, id, amount)
}

func (s *service) CreditLoyalty(ctx context.Context, id string, points int) error {
	if points == 0 {
		return nil
	}
	if points < 0 {
		return fmt.Errorf("points must not be negative")
	}
	return s.repo.AddPoints(ctx, id, points)
}

func (s *service) CreditGiftCard(ctx context.Context, id string, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	return s.repo.AddGiftCardBalance(ctx, id, amount)
}
