package customer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for customer storage.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	AddPoints(ctx context.Context, id string, points int) error
	// DebitPoints atomically deducts points and fails if the balance
	// would go negative.
	DebitPoints(ctx context.Context, id string, points int) error
	AddGiftCardBalance(ctx context.Context, id string, amount decimal.Decimal) error
	// DebitGiftCardBalance atomically deducts balance and fails if it
	// would go negative.
	DebitGiftCardBalance(ctx context.Context, id string, amount decimal.Decimal) error
}
