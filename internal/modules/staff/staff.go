package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role controls what a staff member may do at the register.
type Role string

const (
	RoleCashier Role = "CASHIER"
	RoleManager Role = "MANAGER"
)

// Cashier is a staff member who can open checkout sessions and charge
// sales.
type Cashier struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Repository defines the interface for staff storage.
type Repository interface {
	Create(ctx context.Context, c *Cashier) error
	GetByID(ctx context.Context, id string) (*Cashier, error)
	GetByEmail(ctx context.Context, email string) (*Cashier, error)
}
