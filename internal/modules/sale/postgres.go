package sale

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL sale repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the sale, its items, and their extras inside a single
// transaction.
func (r *postgresRepo) Create(ctx context.Context, s *Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales
		  (id, sale_number, session_id, cashier_id, customer_id, tab_id, order_type,
		   payment_method, gross_total, discount_amount, gift_card_applied, final_total,
		   cash_tendered, change_given, redeemed_points, currency, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		s.ID, s.SaleNumber, s.SessionID, s.CashierID, s.CustomerID, s.TabID, s.OrderType,
		s.PaymentMethod, s.GrossTotal, s.DiscountAmount, s.GiftCardApplied, s.FinalTotal,
		s.CashTendered, s.ChangeGiven, s.RedeemedPoints, s.Currency, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range s.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_items
			  (id, sale_id, product_id, name, quantity, unit_price, line_total,
			   notes, redeemed, points_spent)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			item.ID, s.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice,
			item.LineTotal, item.Notes, item.Redeemed, item.PointsSpent)
		if err != nil {
			return fmt.Errorf("insert sale_item: %w", err)
		}
		for i := range item.Extras {
			ex := &item.Extras[i]
			_, err = tx.ExecContext(ctx, `
				INSERT INTO sale_item_extras (id, sale_item_id, product_id, name, unit_price)
				VALUES ($1,$2,$3,$4,$5)`,
				ex.ID, item.ID, ex.ProductID, ex.Name, ex.UnitPrice)
			if err != nil {
				return fmt.Errorf("insert sale_item_extra: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	s, err := r.scanSale(r.db.QueryRowContext(ctx, `
		SELECT id,sale_number,session_id,cashier_id,customer_id,tab_id,order_type,
		       payment_method,gross_total,discount_amount,gift_card_applied,final_total,
		       cash_tendered,change_given,redeemed_points,currency,created_at
		FROM sales WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	s.Items, err = r.listItems(ctx, s.ID)
	return s, err
}

func (r *postgresRepo) List(ctx context.Context, day string) ([]*Sale, error) {
	query := `
		SELECT id,sale_number,session_id,cashier_id,customer_id,tab_id,order_type,
		       payment_method,gross_total,discount_amount,gift_card_applied,final_total,
		       cash_tendered,change_given,redeemed_points,currency,created_at
		FROM sales
		WHERE created_at::date = COALESCE(NULLIF($1,'')::date, CURRENT_DATE)
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []*Sale
	for rows.Next() {
		s, err := r.scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *postgresRepo) listItems(ctx context.Context, saleID uuid.UUID) ([]*SaleItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,sale_id,product_id,name,quantity,unit_price,line_total,notes,redeemed,points_spent
		FROM sale_items WHERE sale_id=$1 ORDER BY id`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*SaleItem
	for rows.Next() {
		item := &SaleItem{}
		var notes sql.NullString
		err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.LineTotal, &notes,
			&item.Redeemed, &item.PointsSpent)
		if err != nil {
			return nil, err
		}
		item.Notes = notes.String
		if item.Extras, err = r.listExtras(ctx, item.ID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) listExtras(ctx context.Context, itemID uuid.UUID) ([]SaleExtra, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,sale_item_id,product_id,name,unit_price
		FROM sale_item_extras WHERE sale_item_id=$1 ORDER BY id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var extras []SaleExtra
	for rows.Next() {
		var ex SaleExtra
		if err := rows.Scan(&ex.ID, &ex.SaleItemID, &ex.ProductID, &ex.Name, &ex.UnitPrice); err != nil {
			return nil, err
		}
		extras = append(extras, ex)
	}
	return extras, rows.Err()
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scanSale(row rowScanner) (*Sale, error) {
	s := &Sale{}
	var cashierID, customerID, tabID sql.NullString
	err := row.Scan(&s.ID, &s.SaleNumber, &s.SessionID, &cashierID, &customerID, &tabID,
		&s.OrderType, &s.PaymentMethod, &s.GrossTotal, &s.DiscountAmount,
		&s.GiftCardApplied, &s.FinalTotal, &s.CashTendered, &s.ChangeGiven,
		&s.RedeemedPoints, &s.Currency, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.CashierID = parseNullUUID(cashierID)
	s.CustomerID = parseNullUUID(customerID)
	s.TabID = parseNullUUID(tabID)
	return s, nil
}

func parseNullUUID(v sql.NullString) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	uid, err := uuid.Parse(v.String)
	if err != nil {
		return nil
	}
	return &uid
}
