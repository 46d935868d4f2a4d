package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ironleafengravings/storefront/internal/email"
	"github.com/ironleafengravings/storefront/internal/meta"
	"github.com/ironleafengravings/storefront/internal/reconcile"
	"github.com/stretchr/testify/assert"
)

type fakeEmailer struct {
	mu            sync.Mutex
	configured    bool
	receiptErr    error
	internalErr   error
	receipts      []*email.OrderData
	notifications []*email.OrderData
}

func (f *fakeEmailer) Configured() bool { return f.configured }

func (f *fakeEmailer) SendOrderReceipt(data *email.OrderData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.receiptErr != nil {
		return f.receiptErr
	}
	f.receipts = append(f.receipts, data)
	return nil
}

func (f *fakeEmailer) SendOrderNotification(data *email.OrderData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.internalErr != nil {
		return f.internalErr
	}
	f.notifications = append(f.notifications, data)
	return nil
}

type fakeReporter struct {
	mu         sync.Mutex
	configured bool
	err        error
	events     []*meta.PurchaseEvent
}

func (f *fakeReporter) Configured() bool { return f.configured }

func (f *fakeReporter) SendPurchase(_ context.Context, ev *meta.PurchaseEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func sampleResult() *reconcile.Result {
	return &reconcile.Result{
		Status:        reconcile.StatusCommitted,
		OrderID:       "IL-0005",
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane van der Berg",
		CustomerPhone: "555-0100",
		AmountCents:   3297,
		Currency:      "usd",
		Shipping: reconcile.Address{
			Line1: "1 Elm St", City: "Denver", State: "CO", PostalCode: "80202", Country: "US",
		},
		Items: []reconcile.Item{
			{Slug: "wooden-coaster", Name: "Wooden Coaster Set of 2", Quantity: 1, AmountCents: 1998},
		},
	}
}

func TestNotifyOrder_AllChannels(t *testing.T) {
	emails := &fakeEmailer{configured: true}
	reporter := &fakeReporter{configured: true}
	n := NewNotifier(emails, reporter)

	n.NotifyOrder(context.Background(), sampleResult())

	assert.Len(t, emails.receipts, 1)
	assert.Len(t, emails.notifications, 1)
	assert.Len(t, reporter.events, 1)

	ev := reporter.events[0]
	assert.Equal(t, "IL-0005", ev.OrderID)
	assert.Equal(t, "Jane", ev.FirstName)
	assert.Equal(t, "van der Berg", ev.LastName)
	assert.Equal(t, []string{"wooden-coaster"}, ev.ContentIDs)
}

func TestNotifyOrder_ChannelFailuresAreIsolated(t *testing.T) {
	emails := &fakeEmailer{configured: true, receiptErr: errors.New("smtp down")}
	reporter := &fakeReporter{configured: true}
	n := NewNotifier(emails, reporter)

	// A failing receipt must not stop the other channels.
	n.NotifyOrder(context.Background(), sampleResult())

	assert.Empty(t, emails.receipts)
	assert.Len(t, emails.notifications, 1)
	assert.Len(t, reporter.events, 1)
}

func TestNotifyOrder_SkipsReceiptWithoutCustomerEmail(t *testing.T) {
	emails := &fakeEmailer{configured: true}
	reporter := &fakeReporter{configured: true}
	n := NewNotifier(emails, reporter)

	result := sampleResult()
	result.CustomerEmail = ""
	n.NotifyOrder(context.Background(), result)

	assert.Empty(t, emails.receipts)
	assert.Len(t, emails.notifications, 1)
	assert.Len(t, reporter.events, 1)
}

func TestNotifyOrder_SkipsUnconfiguredChannels(t *testing.T) {
	emails := &fakeEmailer{configured: false}
	reporter := &fakeReporter{configured: false}
	n := NewNotifier(emails, reporter)

	n.NotifyOrder(context.Background(), sampleResult())

	assert.Empty(t, emails.receipts)
	assert.Empty(t, emails.notifications)
	assert.Empty(t, reporter.events)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)

	first, last = splitName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
