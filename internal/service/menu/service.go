package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tableside/internal/domain"
	"tableside/internal/repository"
)

type Service struct {
	repo repository.Menu
}

func NewService(repo repository.Menu) *Service {
	return &Service{repo: repo}
}

// List filters to available items unless includeUnavailable is set
// (admin reads).
func (s *Service) List(ctx context.Context, includeUnavailable bool) ([]domain.MenuItem, error) {
	return s.repo.List(ctx, !includeUnavailable)
}

func (s *Service) Create(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItem, error) {
	if req.Name == "" {
		return domain.MenuItem{}, domain.Invalidf("item name required")
	}
	if req.Price < 0 {
		return domain.MenuItem{}, domain.Invalidf("invalid price for item %s", req.Name)
	}
	m := domain.MenuItem{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		Available: true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return domain.MenuItem{}, fmt.Errorf("failed to create menu item: %w", err)
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (domain.MenuItem, error) {
	m, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if !ok {
		return domain.MenuItem{}, &domain.NotFoundError{Resource: "menu item", ID: id}
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.MenuItem{}, domain.Invalidf("invalid price for item %s", m.Name)
		}
		m.Price = *req.Price
	}
	if req.Category != nil {
		m.Category = *req.Category
	}
	if req.Available != nil {
		m.Available = *req.Available
	}
	if _, err := s.repo.Update(ctx, m); err != nil {
		return domain.MenuItem{}, fmt.Errorf("failed to update menu item: %w", err)
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if !ok {
		return &domain.NotFoundError{Resource: "menu item", ID: id}
	}
	return nil
}
