package postgres

import (
	"database/sql"

	"tableside/internal/repository"
)

// New wires all four repositories over one *sql.DB pool.
func New(db *sql.DB) repository.Store {
	return repository.Store{
		Sessions: &SessionRepo{db: db},
		Orders:   &OrderRepo{db: db},
		Menu:     &MenuRepo{db: db},
		Users:    &UserRepo{db: db},
	}
}
