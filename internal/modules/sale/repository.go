package sale

import "context"

// Repository defines the interface for completed-sale storage.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	// List returns sales for a day (YYYY-MM-DD), newest first. An empty
	// day means today.
	List(ctx context.Context, day string) ([]*Sale, error)
}
