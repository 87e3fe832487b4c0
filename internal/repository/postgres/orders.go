package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tableside/internal/domain"
)

type OrderRepo struct {
	db *sql.DB
}

const orderColumns = `id, session_id, table_id, items, status, total_amount, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (domain.Order, error) {
	var o domain.Order
	var status string
	var items []byte
	err := row.Scan(&o.ID, &o.SessionID, &o.TableID, &items, &status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return domain.Order{}, fmt.Errorf("failed to decode order items: %w", err)
	}
	o.Status = domain.OrderStatus(status)
	return o, nil
}

func (r *OrderRepo) Create(ctx context.Context, o domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO orders (id, session_id, table_id, items, status, total_amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, o.ID, o.SessionID, o.TableID, items, string(o.Status), o.TotalAmount, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("failed to query order: %w", err)
	}
	return o, true, nil
}

func (r *OrderRepo) ListActive(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT o.id, o.session_id, o.table_id, o.items, o.status, o.total_amount, o.created_at, o.updated_at
FROM orders o
JOIN customer_sessions s ON s.id = o.session_id
WHERE s.status = 'active'
  AND o.status IN ('pending', 'preparing', 'completed', 'served')
ORDER BY o.created_at ASC
`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active orders: %w", err)
	}
	return collect(rows)
}

func (r *OrderRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderColumns+` FROM orders WHERE session_id = $1 ORDER BY created_at ASC
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session orders: %w", err)
	}
	return collect(rows)
}

func (r *OrderRepo) ListByTable(ctx context.Context, tableID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderColumns+` FROM orders WHERE table_id = $1 ORDER BY created_at ASC
`, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to list table orders: %w", err)
	}
	return collect(rows)
}

func (r *OrderRepo) SetStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) (domain.Order, bool, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1
RETURNING `+orderColumns, id, string(status), at)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("failed to update order status: %w", err)
	}
	return o, true, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OrderRepo) DeleteUnservedByTable(ctx context.Context, tableID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM orders WHERE table_id = $1 AND status <> 'served'
`, tableID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete table orders: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *OrderRepo) FinalizeTable(ctx context.Context, tableID string, at time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = 'served', updated_at = $2
WHERE table_id = $1 AND status <> 'served'
`, tableID, at)
	if err != nil {
		return 0, fmt.Errorf("failed to finalize table orders: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func collect(rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()
	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
