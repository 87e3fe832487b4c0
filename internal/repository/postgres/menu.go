package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tableside/internal/domain"
)

type MenuRepo struct {
	db *sql.DB
}

func (r *MenuRepo) List(ctx context.Context, onlyAvailable bool) ([]domain.MenuItem, error) {
	q := `SELECT id, name, price, category, available FROM menu_items`
	if onlyAvailable {
		q += ` WHERE available = TRUE`
	}
	q += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Available); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MenuRepo) Get(ctx context.Context, id string) (domain.MenuItem, bool, error) {
	var m domain.MenuItem
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, price, category, available FROM menu_items WHERE id = $1
`, id).Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, false, nil
	}
	if err != nil {
		return domain.MenuItem{}, false, fmt.Errorf("failed to query menu item: %w", err)
	}
	return m, true, nil
}

func (r *MenuRepo) Create(ctx context.Context, m domain.MenuItem) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO menu_items (id, name, price, category, available)
VALUES ($1, $2, $3, $4, $5)
`, m.ID, m.Name, m.Price, m.Category, m.Available)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *MenuRepo) Update(ctx context.Context, m domain.MenuItem) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE menu_items SET name = $2, price = $3, category = $4, available = $5 WHERE id = $1
`, m.ID, m.Name, m.Price, m.Category, m.Available)
	if err != nil {
		return false, fmt.Errorf("failed to update menu item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *MenuRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
