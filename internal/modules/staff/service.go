package staff

import "context"

// Service defines the interface for staff-related business logic.
type Service interface {
	RegisterCashier(ctx context.Context, email, password, displayName string, role Role) (*Cashier, error)
	GetCashier(ctx context.Context, id string) (*Cashier, error)
}
