package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo Repository
}

// NewService creates a new staff service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterCashier(ctx context.Context, email, password, displayName string, role Role) (*Cashier, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	switch role {
	case RoleCashier, RoleManager:
	case "":
		role = RoleCashier
	default:
		return nil, fmt.Errorf("invalid role: %s (allowed: CASHIER, MANAGER)", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cashier := &Cashier{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		DisplayName:  displayName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, cashier); err != nil {
		return nil, err
	}

	return cashier, nil
}

func (s *service) GetCashier(ctx context.Context, id string) (*Cashier, error) {
	return s.repo.GetByID(ctx, id)
}
