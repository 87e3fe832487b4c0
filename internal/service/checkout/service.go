// Package checkout closes out a table: bill the session, finalize its
// orders, publish the reset. The whole operation runs under the table's
// lock so the bill sum and the finalize step see the same snapshot; an
// order placed concurrently waits and lands on the next session.
package checkout

import (
	"context"
	"fmt"
	"time"

	"tableside/internal/broadcast"
	"tableside/internal/domain"
	"tableside/internal/logger"
	"tableside/internal/repository"
	"tableside/internal/service/session"
)

type Coordinator struct {
	orders repository.Orders
	ledger *session.Ledger
	pub    broadcast.Publisher
	lg     *logger.Logger
}

func NewCoordinator(orders repository.Orders, ledger *session.Ledger, pub broadcast.Publisher, lg *logger.Logger) *Coordinator {
	return &Coordinator{orders: orders, ledger: ledger, pub: pub, lg: lg}
}

// ResetTable computes the bill over the table's live orders, completes
// the active session with that total, and forces every non-served order
// to served. Orders are finalized, not deleted: the history stays
// auditable. A table without an active session still gets its stray
// orders finalized and a zero bill. A failure after a committed step
// leaves the partial state visible; the error says which step failed.
func (c *Coordinator) ResetTable(ctx context.Context, tableID string) (domain.ResetTableResult, error) {
	unlock := c.ledger.LockTable(tableID)
	defer unlock()

	orders, err := c.orders.ListByTable(ctx, tableID)
	if err != nil {
		return domain.ResetTableResult{}, fmt.Errorf("failed to sum table orders: %w", err)
	}
	total := 0.0
	for _, o := range orders {
		switch o.Status {
		case domain.StatusPending, domain.StatusPreparing, domain.StatusCompleted, domain.StatusServed:
			total += o.TotalAmount
		}
	}

	if _, _, err := c.ledger.Complete(ctx, tableID, &total); err != nil {
		return domain.ResetTableResult{}, err
	}

	finalized, err := c.orders.FinalizeTable(ctx, tableID, time.Now().UTC())
	if err != nil {
		return domain.ResetTableResult{}, fmt.Errorf("session completed but orders not finalized: %w", err)
	}

	c.lg.Info("table_reset", map[string]any{"table_id": tableID, "total": total, "orders_finalized": finalized})

	result := domain.ResetTableResult{TableID: tableID, TotalAmount: total, OrdersFinalized: finalized}
	if err := c.pub.Publish(ctx, domain.TableTopic(tableID), domain.EventTableReset, tableID); err != nil {
		return result, fmt.Errorf("table reset committed but not published: %w", err)
	}
	if err := c.pub.Publish(ctx, domain.TopicGlobal, domain.EventTableReset, tableID); err != nil {
		return result, fmt.Errorf("table reset committed but not published: %w", err)
	}
	return result, nil
}
