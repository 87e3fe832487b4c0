// Package order owns order records and their status lifecycle. Session
// resolution is delegated to the session ledger; every mutation
// publishes its event only after the repository write committed.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tableside/internal/broadcast"
	"tableside/internal/domain"
	"tableside/internal/logger"
	"tableside/internal/repository"
	"tableside/internal/service/session"
)

type Service struct {
	orders repository.Orders
	ledger *session.Ledger
	pub    broadcast.Publisher
	lg     *logger.Logger
}

func NewService(orders repository.Orders, ledger *session.Ledger, pub broadcast.Publisher, lg *logger.Logger) *Service {
	return &Service{orders: orders, ledger: ledger, pub: pub, lg: lg}
}

// Place validates the request, attaches the order to the table's
// current active session (creating one when absent, unless an explicit
// session id is given) and creates it with status pending. The total is
// computed here once and never recomputed.
func (s *Service) Place(ctx context.Context, req domain.PlaceOrderRequest) (domain.Order, error) {
	if req.TableID == "" {
		return domain.Order{}, domain.Invalidf("table ID required")
	}
	if len(req.Items) == 0 {
		return domain.Order{}, domain.Invalidf("at least one item is required")
	}

	total := 0.0
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return domain.Order{}, domain.Invalidf("invalid quantity for item %s", item.Name)
		}
		if item.Price < 0 {
			return domain.Order{}, domain.Invalidf("invalid price for item %s", item.Name)
		}
		total += item.Price * float64(item.Quantity)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sess, _, err := s.ledger.GetOrCreate(ctx, req.TableID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("failed to resolve session: %w", err)
		}
		sessionID = sess.ID
	}

	now := time.Now().UTC()
	o := domain.Order{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		TableID:     req.TableID,
		Items:       req.Items,
		Status:      domain.StatusPending,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return domain.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	s.lg.Info("order_placed", map[string]any{"order_id": o.ID, "table_id": o.TableID, "total": o.TotalAmount})
	if err := s.publishOrderUpdate(ctx, o.TableID, o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// ListActive returns every live order of an active session, oldest
// first. Served orders stay listed until their table is reset.
func (s *Service) ListActive(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListActive(ctx)
}

// ListForTable returns the order history of the table's current active
// session only. History never leaks across sessions: after a reset the
// table starts with an empty history.
func (s *Service) ListForTable(ctx context.Context, tableID string) ([]domain.Order, error) {
	sess, ok, err := s.ledger.GetActive(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Order{}, nil
	}
	return s.orders.ListBySession(ctx, sess.ID)
}

// UpdateStatus sets one of preparing/completed/served. Transition order
// is deliberately not enforced; any permitted caller may set any target
// status at any time.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	if !status.ValidTarget() {
		return domain.Order{}, domain.Invalidf("invalid status %q", status)
	}
	o, ok, err := s.orders.SetStatus(ctx, orderID, status, time.Now().UTC())
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to update order: %w", err)
	}
	if !ok {
		return domain.Order{}, &domain.NotFoundError{Resource: "order", ID: orderID}
	}

	s.lg.Info("order_status_changed", map[string]any{"order_id": o.ID, "status": string(status)})
	if err := s.publishOrderUpdate(ctx, o.TableID, o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// Serve marks the order served; the waiter's endpoint.
func (s *Service) Serve(ctx context.Context, orderID string) (domain.Order, error) {
	return s.UpdateStatus(ctx, orderID, domain.StatusServed)
}

// Cancel deletes a single order unconditionally.
func (s *Service) Cancel(ctx context.Context, orderID string) error {
	o, ok, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Resource: "order", ID: orderID}
	}
	if _, err := s.orders.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.lg.Info("order_cancelled", map[string]any{"order_id": orderID})
	return s.publishOrderUpdate(ctx, o.TableID, nil)
}

// CancelTable deletes every non-served order of the table and completes
// its active session without a bill total.
func (s *Service) CancelTable(ctx context.Context, tableID string) error {
	unlock := s.ledger.LockTable(tableID)
	defer unlock()

	n, err := s.orders.DeleteUnservedByTable(ctx, tableID)
	if err != nil {
		return fmt.Errorf("failed to cancel table orders: %w", err)
	}
	if _, _, err := s.ledger.Complete(ctx, tableID, nil); err != nil {
		return err
	}

	s.lg.Info("table_cancelled", map[string]any{"table_id": tableID, "orders_removed": n})
	return s.publishTableReset(ctx, tableID)
}

// Events go to the table's topic and to the global topic; a client
// subscribed to both receives both publications.
func (s *Service) publishOrderUpdate(ctx context.Context, tableID string, payload any) error {
	if err := s.pub.Publish(ctx, domain.TableTopic(tableID), domain.EventOrderUpdate, payload); err != nil {
		return fmt.Errorf("failed to publish order update: %w", err)
	}
	if err := s.pub.Publish(ctx, domain.TopicGlobal, domain.EventOrderUpdate, payload); err != nil {
		return fmt.Errorf("failed to publish order update: %w", err)
	}
	return nil
}

func (s *Service) publishTableReset(ctx context.Context, tableID string) error {
	if err := s.pub.Publish(ctx, domain.TableTopic(tableID), domain.EventTableReset, tableID); err != nil {
		return fmt.Errorf("failed to publish table reset: %w", err)
	}
	if err := s.pub.Publish(ctx, domain.TopicGlobal, domain.EventTableReset, tableID); err != nil {
		return fmt.Errorf("failed to publish table reset: %w", err)
	}
	return nil
}
