package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tableside/internal/broadcast"
	"tableside/internal/domain"
	"tableside/internal/logger"
	"tableside/internal/repository"
	"tableside/internal/repository/memory"
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

func (p *capturePub) named(name string) []broadcast.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []broadcast.Event
	for _, ev := range p.events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

func newTestService(t *testing.T) (*Service, *session.Ledger, repository.Store, *capturePub) {
	t.Helper()
	store := memory.New()
	ledger := session.NewLedger(store.Sessions)
	pub := &capturePub{}
	svc := NewService(store.Orders, ledger, pub, logger.New("order-test"))
	return svc, ledger, store, pub
}

func burgerOrder(tableID string) domain.PlaceOrderRequest {
	return domain.PlaceOrderRequest{
		TableID: tableID,
		Items:   []domain.OrderItem{{Name: "Burger", Price: 12.99, Quantity: 2}},
	}
}

func TestPlaceCreatesSessionAndComputesTotal(t *testing.T) {
	svc, ledger, _, pub := newTestService(t)
	ctx := context.Background()

	o, err := svc.Place(ctx, burgerOrder("5"))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.Status != domain.StatusPending {
		t.Fatalf("new order status = %s, want pending", o.Status)
	}
	if o.TotalAmount != 25.98 {
		t.Fatalf("total = %v, want 25.98", o.TotalAmount)
	}

	sess, ok, err := ledger.GetActive(ctx, "5")
	if err != nil || !ok {
		t.Fatalf("expected active session for table 5, ok=%v err=%v", ok, err)
	}
	if o.SessionID != sess.ID {
		t.Fatalf("order bound to %s, session is %s", o.SessionID, sess.ID)
	}

	updates := pub.named(domain.EventOrderUpdate)
	if len(updates) != 2 {
		t.Fatalf("expected orderUpdate on table topic and global, got %d events", len(updates))
	}
	topics := map[string]bool{updates[0].Topic: true, updates[1].Topic: true}
	if !topics[domain.TableTopic("5")] || !topics[domain.TopicGlobal] {
		t.Fatalf("unexpected topics: %v", topics)
	}
}

func TestPlaceValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.PlaceOrderRequest
	}{
		{"missing table", domain.PlaceOrderRequest{Items: []domain.OrderItem{{Name: "Coke", Price: 2.99, Quantity: 1}}}},
		{"empty items", domain.PlaceOrderRequest{TableID: "1"}},
		{"zero quantity", domain.PlaceOrderRequest{TableID: "1", Items: []domain.OrderItem{{Name: "Coke", Price: 2.99, Quantity: 0}}}},
		{"negative price", domain.PlaceOrderRequest{TableID: "1", Items: []domain.OrderItem{{Name: "Coke", Price: -1, Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Place(ctx, tc.req)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("want ValidationError, got %v", err)
			}
		})
	}
}

func TestPlaceFreePriceItemAllowed(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	o, err := svc.Place(context.Background(), domain.PlaceOrderRequest{
		TableID: "1",
		Items:   []domain.OrderItem{{Name: "Tap Water", Price: 0, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("zero price must be valid: %v", err)
	}
	if o.TotalAmount != 0 {
		t.Fatalf("total = %v, want 0", o.TotalAmount)
	}
}

func TestPlaceExplicitSessionSkipsResolution(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	ctx := context.Background()

	sess, _, err := ledger.GetOrCreate(ctx, "9")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	req := burgerOrder("9")
	req.SessionID = sess.ID
	o, err := svc.Place(ctx, req)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.SessionID != sess.ID {
		t.Fatalf("explicit session id ignored: got %s want %s", o.SessionID, sess.ID)
	}
}

func TestUpdateStatusKeepsTotal(t *testing.T) {
	svc, _, _, pub := newTestService(t)
	ctx := context.Background()

	o, err := svc.Place(ctx, burgerOrder("5"))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	prep, err := svc.UpdateStatus(ctx, o.ID, domain.StatusPreparing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	served, err := svc.Serve(ctx, o.ID)
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if served.Status != domain.StatusServed {
		t.Fatalf("status = %s, want served", served.Status)
	}
	if prep.TotalAmount != 25.98 || served.TotalAmount != 25.98 {
		t.Fatal("status updates must never recompute the total")
	}
	if !served.UpdatedAt.After(o.CreatedAt) && !served.UpdatedAt.Equal(o.CreatedAt) {
		t.Fatal("updated timestamp not stamped")
	}

	// placement + two status changes, each on two topics
	if got := len(pub.named(domain.EventOrderUpdate)); got != 6 {
		t.Fatalf("expected 6 orderUpdate events, got %d", got)
	}
}

func TestUpdateStatusRejectsPendingTarget(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	o, err := svc.Place(ctx, burgerOrder("5"))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	_, err = svc.UpdateStatus(ctx, o.ID, domain.StatusPending)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("pending must not be a target status, got %v", err)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), "missing", domain.StatusPreparing)
	var nfe *domain.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestListActiveIncludesServed(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	o, err := svc.Place(ctx, burgerOrder("5"))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := svc.Serve(ctx, o.ID); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].ID != o.ID {
		t.Fatalf("served order must stay listed until table reset, got %v", active)
	}
}

func TestListForTableDoesNotLeakAcrossSessions(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Place(ctx, burgerOrder("5")); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, _, err := ledger.Complete(ctx, "5", nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// no active session: empty history, not the old session's orders
	history, err := svc.ListForTable(ctx, "5")
	if err != nil {
		t.Fatalf("ListForTable: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history leaked %d orders from a completed session", len(history))
	}

	second, err := svc.Place(ctx, burgerOrder("5"))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	history, err = svc.ListForTable(ctx, "5")
	if err != nil {
		t.Fatalf("ListForTable: %v", err)
	}
	if len(history) != 1 || history[0].ID != second.ID {
		t.Fatalf("history must show only the new session's orders, got %v", history)
	}
}

func TestCancelOrder(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	o, err := svc.Place(ctx, burgerOrder("5"))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := svc.Cancel(ctx, o.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	var nfe *domain.NotFoundError
	if err := svc.Cancel(ctx, o.ID); !errors.As(err, &nfe) {
		t.Fatalf("second cancel must be NotFoundError, got %v", err)
	}
}

func TestCancelTableRemovesUnservedAndClosesSession(t *testing.T) {
	svc, ledger, _, pub := newTestService(t)
	ctx := context.Background()

	first, err := svc.Place(ctx, burgerOrder("5"))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := svc.Serve(ctx, first.ID); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if _, err := svc.Place(ctx, burgerOrder("5")); err != nil {
		t.Fatalf("Place: %v", err)
	}

	if err := svc.CancelTable(ctx, "5"); err != nil {
		t.Fatalf("CancelTable: %v", err)
	}

	if _, ok, _ := ledger.GetActive(ctx, "5"); ok {
		t.Fatal("session must be completed after table cancel")
	}
	// the served order survives the cancel
	if _, ok, err := svc.orders.Get(ctx, first.ID); err != nil || !ok {
		t.Fatalf("served order must not be deleted, ok=%v err=%v", ok, err)
	}
	if got := len(pub.named(domain.EventTableReset)); got != 2 {
		t.Fatalf("expected tableReset on table topic and global, got %d", got)
	}
}
