package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, name, description, category, sku, price_eat_in, price_take_away,
		   is_extra, is_redeemable, points_to_redeem, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.Name, p.Description, p.Category, p.SKU, p.PriceEatIn, p.PriceTakeAway,
		p.IsExtra, p.IsRedeemable, p.PointsToRedeem, p.IsActive)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id,name,description,category,sku,price_eat_in,price_take_away,
		       is_extra,is_redeemable,points_to_redeem,is_active,created_at,updated_at
		FROM products WHERE id=$1`, uid))
}

func (r *postgresRepo) List(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	query := `
		SELECT id,name,description,category,sku,price_eat_in,price_take_away,
		       is_extra,is_redeemable,points_to_redeem,is_active,created_at,updated_at
		FROM products
		WHERE ($1 = '' OR category = $1) AND (NOT $2 OR is_active)
		ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, query, category, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET
		  name=$1, description=$2, category=$3, sku=$4, price_eat_in=$5,
		  price_take_away=$6, is_extra=$7, is_redeemable=$8, points_to_redeem=$9,
		  is_active=$10, updated_at=$11
		WHERE id=$12`,
		p.Name, p.Description, p.Category, p.SKU, p.PriceEatIn,
		p.PriceTakeAway, p.IsExtra, p.IsRedeemable, p.PointsToRedeem,
		p.IsActive, time.Now(), p.ID)
	return err
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Product, error) {
	p := &Product{}
	var description, sku sql.NullString
	err := row.Scan(&p.ID, &p.Name, &description, &p.Category, &sku,
		&p.PriceEatIn, &p.PriceTakeAway, &p.IsExtra, &p.IsRedeemable,
		&p.PointsToRedeem, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.SKU = sku.String
	return p, nil
}
