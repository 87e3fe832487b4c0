package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tableside/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func (r *UserRepo) ByUsername(ctx context.Context, username string) (domain.User, bool, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, role FROM users WHERE username = $1
`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("failed to query user: %w", err)
	}
	return u, true, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, username, password_hash, role)
VALUES ($1, $2, $3, $4)
`, u.ID, u.Username, u.PasswordHash, u.Role)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}
