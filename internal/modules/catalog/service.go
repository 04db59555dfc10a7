package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error)
	DeactivateProduct(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	p := &Product{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		SKU:            req.SKU,
		PriceEatIn:     req.PriceEatIn,
		PriceTakeAway:  req.PriceTakeAway,
		IsExtra:        req.IsExtra,
		IsRedeemable:   req.IsRedeemable,
		PointsToRedeem: req.PointsToRedeem,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	return s.repo.List(ctx, category, activeOnly)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	p.Name = req.Name
	p.Description = req.Description
	p.Category = req.Category
	p.SKU = req.SKU
	p.PriceEatIn = req.PriceEatIn
	p.PriceTakeAway = req.PriceTakeAway
	p.IsExtra = req.IsExtra
	p.IsRedeemable = req.IsRedeemable
	p.PointsToRedeem = req.PointsToRedeem
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeactivateProduct(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}
	p.IsActive = false
	return s.repo.Update(ctx, p)
}

func validate(req CreateProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Category == "" {
		return fmt.Errorf("category is required")
	}
	if req.PriceEatIn.LessThan(decimal.Zero) || req.PriceTakeAway.LessThan(decimal.Zero) {
		return fmt.Errorf("prices must not be negative")
	}
	if req.IsRedeemable && req.PointsToRedeem <= 0 {
		return fmt.Errorf("points_to_redeem must be greater than zero for a redeemable product")
	}
	if !req.IsRedeemable && req.PointsToRedeem != 0 {
		return fmt.Errorf("points_to_redeem is only valid on a redeemable product")
	}
	return nil
}
