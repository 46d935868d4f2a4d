// Package orderid allocates stable, sequential, human-readable order ids
// from a shared counter, keyed by Stripe payment reference.
//
// Allocation is idempotent: a payment reference maps to exactly one order
// id no matter how many times (or how concurrently) the webhook is
// delivered. The counter read, counter increment, and idempotency-record
// insert happen in a single database transaction, so two allocations for
// different references can never receive the same sequence number.
package orderid

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ironleafengravings/storefront/storage/db"
	"github.com/sethvargo/go-retry"
)

// ErrAllocationFailed is returned when the allocation transaction could not
// be committed after retries. Callers must not create an order without a
// successfully allocated id.
var ErrAllocationFailed = errors.New("order id allocation failed")

// DefaultPrefix and DefaultWidth produce ids like "IL-0005".
const (
	DefaultPrefix = "IL-"
	DefaultWidth  = 4
)

type Allocator struct {
	db      *sql.DB
	queries *db.Queries
	prefix  string
	width   int
}

func NewAllocator(database *sql.DB, queries *db.Queries, prefix string, width int) *Allocator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return &Allocator{
		db:      database,
		queries: queries,
		prefix:  prefix,
		width:   width,
	}
}

// Format renders a sequence number as an order id, e.g. 5 -> "IL-0005".
// Sequence numbers past the pad width simply grow longer.
func (a *Allocator) Format(sequence int64) string {
	return fmt.Sprintf("%s%0*d", a.prefix, a.width, sequence)
}

// Allocate returns the order id for a payment reference, allocating the
// next sequence number if the reference has never been seen. Safe to call
// concurrently and repeatedly for the same reference.
func (a *Allocator) Allocate(ctx context.Context, paymentReference string) (string, error) {
	if paymentReference == "" {
		return "", fmt.Errorf("%w: empty payment reference", ErrAllocationFailed)
	}

	var orderID string
	backoff := retry.WithMaxRetries(5, retry.NewExponential(10*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		id, err := a.allocateOnce(ctx, paymentReference)
		if err != nil {
			if isBusy(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		slog.Error("order id allocation failed", "error", err, "payment_reference", paymentReference)
		return "", fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}
	return orderID, nil
}

func (a *Allocator) allocateOnce(ctx context.Context, paymentReference string) (string, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin allocation transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := a.queries.WithTx(tx)

	// Idempotent short-circuit: a reference that already has a record keeps
	// its id forever, and the counter is untouched.
	ref, err := qtx.GetOrderReference(ctx, paymentReference)
	if err == nil {
		return ref.OrderID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("lookup order reference: %w", err)
	}

	next := int64(1)
	counter, err := qtx.GetOrderCounter(ctx)
	switch {
	case err == nil:
		next = counter.NextSequence
	case errors.Is(err, sql.ErrNoRows):
		if err := qtx.InitOrderCounter(ctx); err != nil {
			return "", fmt.Errorf("init order counter: %w", err)
		}
	default:
		return "", fmt.Errorf("read order counter: %w", err)
	}

	orderID := a.Format(next)

	if err := qtx.SetOrderCounter(ctx, next+1); err != nil {
		return "", fmt.Errorf("advance order counter: %w", err)
	}
	if err := qtx.CreateOrderReference(ctx, db.CreateOrderReferenceParams{
		PaymentReference: paymentReference,
		OrderID:          orderID,
	}); err != nil {
		return "", fmt.Errorf("record order reference: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit allocation: %w", err)
	}

	slog.Info("allocated order id", "order_id", orderID, "payment_reference", paymentReference)
	return orderID, nil
}

// isBusy reports whether an error is SQLite write contention, which both
// drivers surface as a "database is locked"/"busy" message.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database table is locked")
}
