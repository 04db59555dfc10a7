package customer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL customer repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, email, loyalty_points, gift_card_balance)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		c.ID, c.Name, c.Phone, c.Email, c.LoyaltyPoints, c.GiftCardBalance)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id,name,phone,email,loyalty_points,gift_card_balance,created_at,updated_at
		FROM customers WHERE id=$1`, uid))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,name,phone,email,loyalty_points,gift_card_balance,created_at,updated_at
		FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var customers []*Customer
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) AddPoints(ctx context.Context, id string, points int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers SET loyalty_points = loyalty_points + $1, updated_at = $2 WHERE id=$3`,
		points, time.Now(), id)
	return err
}

func (r *postgresRepo) DebitPoints(ctx context.Context, id string, points int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET loyalty_points = loyalty_points - $1, updated_at = $2
		WHERE id=$3 AND loyalty_points >= $1`,
		points, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "insufficient loyalty points")
}

func (r *postgresRepo) AddGiftCardBalance(ctx context.Context, id string, amount decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers SET gift_card_balance = gift_card_balance + $1, updated_at = $2 WHERE id=$3`,
		amount, time.Now(), id)
	return err
}

func (r *postgresRepo) DebitGiftCardBalance(ctx context.Context, id string, amount decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET gift_card_balance = gift_card_balance - $1, updated_at = $2
		WHERE id=$3 AND gift_card_balance >= $1`,
		amount, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "insufficient gift card balance")
}

func requireRow(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Customer, error) {
	c := &Customer{}
	var phone, email sql.NullString
	err := row.Scan(&c.ID, &c.Name, &phone, &email,
		&c.LoyaltyPoints, &c.GiftCardBalance, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Phone = phone.String
	c.Email = email.String
	return c, nil
}
