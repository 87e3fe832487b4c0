package checkout

import (
	"context"
	"sync"
	"testing"

	"tableside/internal/broadcast"
	"tableside/internal/domain"
	"tableside/internal/logger"
	"tableside/internal/repository"
	"tableside/internal/repository/memory"
	"tableside/internal/service/order"
	"tableside/internal/service/session"
)

type capturePub struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (p *capturePub) Publish(_ context.Context, topic, name string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, broadcast.Event{Topic: topic, Name: name, Payload: payload})
	return nil
}

func newFixture(t *testing.T) (*Coordinator, *order.Service, *session.Ledger, repository.Store, *capturePub) {
	t.Helper()
	store := memory.New()
	ledger := session.NewLedger(store.Sessions)
	pub := &capturePub{}
	lg := logger.New("checkout-test")
	orders := order.NewService(store.Orders, ledger, pub, lg)
	co := NewCoordinator(store.Orders, ledger, pub, lg)
	return co, orders, ledger, store, pub
}

func TestResetTableBillsAndFinalizes(t *testing.T) {
	co, orders, ledger, store, pub := newFixture(t)
	ctx := context.Background()

	placed, err := orders.Place(ctx, domain.PlaceOrderRequest{
		TableID: "5",
		Items:   []domain.OrderItem{{Name: "Burger", Price: 12.99, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := orders.UpdateStatus(ctx, placed.ID, domain.StatusPreparing); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	result, err := co.ResetTable(ctx, "5")
	if err != nil {
		t.Fatalf("ResetTable: %v", err)
	}
	if result.TotalAmount != 25.98 {
		t.Fatalf("bill = %v, want 25.98", result.TotalAmount)
	}
	if result.OrdersFinalized != 1 {
		t.Fatalf("finalized = %d, want 1", result.OrdersFinalized)
	}

	if _, ok, _ := ledger.GetActive(ctx, "5"); ok {
		t.Fatal("session must be completed after reset")
	}
	o, ok, err := store.Orders.Get(ctx, placed.ID)
	if err != nil || !ok {
		t.Fatalf("order gone after reset: ok=%v err=%v", ok, err)
	}
	if o.Status != domain.StatusServed {
		t.Fatalf("order status = %s, want served (finalized, not deleted)", o.Status)
	}

	next, created, err := ledger.GetOrCreate(ctx, "5")
	if err != nil || !created {
		t.Fatalf("expected a fresh session after reset, created=%v err=%v", created, err)
	}
	if next.ID == placed.SessionID {
		t.Fatal("new session reused the completed session's id")
	}

	resets := 0
	for _, ev := range pub.events {
		if ev.Name == domain.EventTableReset {
			resets++
			if ev.Payload != "5" {
				t.Fatalf("tableReset payload = %v, want table id", ev.Payload)
			}
		}
	}
	if resets != 2 {
		t.Fatalf("expected tableReset on table topic and global, got %d", resets)
	}
}

func TestResetTableAlreadyServedIsNoop(t *testing.T) {
	co, orders, _, _, _ := newFixture(t)
	ctx := context.Background()

	placed, err := orders.Place(ctx, domain.PlaceOrderRequest{
		TableID: "5",
		Items:   []domain.OrderItem{{Name: "Burger", Price: 12.99, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := orders.Serve(ctx, placed.ID); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	result, err := co.ResetTable(ctx, "5")
	if err != nil {
		t.Fatalf("ResetTable: %v", err)
	}
	if result.TotalAmount != 25.98 {
		t.Fatalf("served orders still count toward the bill, got %v", result.TotalAmount)
	}
	if result.OrdersFinalized != 0 {
		t.Fatalf("already-served order must not be re-finalized, got %d", result.OrdersFinalized)
	}
}

func TestResetEmptyTable(t *testing.T) {
	co, _, ledger, _, _ := newFixture(t)
	ctx := context.Background()

	result, err := co.ResetTable(ctx, "42")
	if err != nil {
		t.Fatalf("ResetTable on an empty table must not fail: %v", err)
	}
	if result.TotalAmount != 0 || result.OrdersFinalized != 0 {
		t.Fatalf("empty table reset = %+v, want zeros", result)
	}
	if _, ok, _ := ledger.GetActive(ctx, "42"); ok {
		t.Fatal("no session should exist after resetting an empty table")
	}
}

func TestResetFinalizesStrayOrdersWithoutSession(t *testing.T) {
	co, orders, ledger, store, _ := newFixture(t)
	ctx := context.Background()

	placed, err := orders.Place(ctx, domain.PlaceOrderRequest{
		TableID: "8",
		Items:   []domain.OrderItem{{Name: "Coke", Price: 2.99, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	// session closed out of band, the pending order left behind
	if _, _, err := ledger.Complete(ctx, "8", nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	result, err := co.ResetTable(ctx, "8")
	if err != nil {
		t.Fatalf("ResetTable: %v", err)
	}
	if result.OrdersFinalized != 1 {
		t.Fatalf("stray order not finalized: %+v", result)
	}
	o, _, _ := store.Orders.Get(ctx, placed.ID)
	if o.Status != domain.StatusServed {
		t.Fatalf("stray order status = %s, want served", o.Status)
	}
}
