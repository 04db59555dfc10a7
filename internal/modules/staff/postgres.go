package staff

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL staff repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, c *Cashier) error {
	query := `
		INSERT INTO staff (id, email, password_hash, display_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Email, c.PasswordHash, c.DisplayName, c.Role, c.IsActive)
	return err
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Cashier, error) {
	query := `
		SELECT id, email, password_hash, display_name, role, is_active, created_at, updated_at
		FROM staff
		WHERE email = $1
	`
	return r.scan(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Cashier, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, email, password_hash, display_name, role, is_active, created_at, updated_at
		FROM staff
		WHERE id = $1
	`
	return r.scan(r.db.QueryRowContext(ctx, query, parsedID))
}

func (r *postgresRepository) scan(row *sql.Row) (*Cashier, error) {
	c := &Cashier{}
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.DisplayName,
		&c.Role,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
