package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tableside/internal/domain"
	"tableside/internal/repository"
)

// seed loads the memory backend with the default staff accounts and a
// starter menu, so the no-database mode is usable out of the box.
func seed(ctx context.Context, store repository.Store) error {
	accounts := []struct{ username, password, role string }{
		{"admin", "admin123", domain.RoleAdmin},
		{"kitchen", "kitchen123", domain.RoleKitchen},
		{"counter", "counter123", domain.RoleCounter},
		{"waiter", "waiter123", domain.RoleWaiter},
	}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		u := domain.User{ID: uuid.NewString(), Username: a.username, PasswordHash: string(hash), Role: a.role}
		if err := store.Users.Create(ctx, u); err != nil {
			return err
		}
	}

	items := []domain.MenuItem{
		{ID: uuid.NewString(), Name: "Burger", Price: 12.99, Category: "main", Available: true},
		{ID: uuid.NewString(), Name: "Pizza", Price: 15.99, Category: "main", Available: true},
		{ID: uuid.NewString(), Name: "Coke", Price: 2.99, Category: "drink", Available: true},
	}
	for _, m := range items {
		if err := store.Menu.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
