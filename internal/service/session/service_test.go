package session

import (
	"context"
	"sync"
	"testing"

	"tableside/internal/repository/memory"
)

func TestGetOrCreateReturnsExisting(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(memory.New().Sessions)

	first, created, err := ledger.GetOrCreate(ctx, "5")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created {
		t.Fatal("expected first call to create a session")
	}

	second, created, err := ledger.GetOrCreate(ctx, "5")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("second call must not create a new session")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same session, got %s and %s", first.ID, second.ID)
	}
}

func TestGetOrCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(memory.New().Sessions)

	const n = 32
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _, err := ledger.GetOrCreate(ctx, "7")
			if err != nil {
				t.Errorf("GetOrCreate: %v", err)
				return
			}
			ids[i] = s.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("concurrent calls created distinct sessions: %s vs %s", ids[0], ids[i])
		}
	}
}

func TestCompleteStampsTotalAndAllowsNewSession(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Sessions
	ledger := NewLedger(repo)

	first, _, err := ledger.GetOrCreate(ctx, "3")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	total := 25.98
	id, ok, err := ledger.Complete(ctx, "3", &total)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !ok || id != first.ID {
		t.Fatalf("expected to complete %s, got %q ok=%v", first.ID, id, ok)
	}

	if _, ok, _ := ledger.GetActive(ctx, "3"); ok {
		t.Fatal("table must have no active session after completion")
	}

	next, created, err := ledger.GetOrCreate(ctx, "3")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created || next.ID == first.ID {
		t.Fatalf("expected a brand-new session after completion, got created=%v id=%s", created, next.ID)
	}
}

func TestCompleteWithoutActiveSessionIsNoop(t *testing.T) {
	ledger := NewLedger(memory.New().Sessions)

	id, ok, err := ledger.Complete(context.Background(), "unknown", nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if ok || id != "" {
		t.Fatalf("expected no-op, got id=%q ok=%v", id, ok)
	}
}

func TestGetActiveUnknownTable(t *testing.T) {
	ledger := NewLedger(memory.New().Sessions)

	_, ok, err := ledger.GetActive(context.Background(), "nope")
	if err != nil {
		t.Fatalf("lookups against unknown tables must not error: %v", err)
	}
	if ok {
		t.Fatal("unknown table reported an active session")
	}
}
