package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ironleafengravings/storefront/internal/orderid"
	"github.com/ironleafengravings/storefront/storage"
	"github.com/ironleafengravings/storefront/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
)

type fakePayments struct {
	sessions map[string]*stripe.CheckoutSession
	intents  map[string]*stripe.PaymentIntent
}

func (f *fakePayments) GetCheckoutSession(_ context.Context, id string) (*stripe.CheckoutSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no such session: %s", id)
	}
	return s, nil
}

func (f *fakePayments) GetPaymentIntent(_ context.Context, id string) (*stripe.PaymentIntent, error) {
	pi, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such payment intent: %s", id)
	}
	return pi, nil
}

func newTestReconciler(t *testing.T) (*Reconciler, *db.Queries, *fakePayments) {
	t.Helper()
	database, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	payments := &fakePayments{
		sessions: make(map[string]*stripe.CheckoutSession),
		intents:  make(map[string]*stripe.PaymentIntent),
	}
	allocator := orderid.NewAllocator(database, queries, orderid.DefaultPrefix, orderid.DefaultWidth)
	return NewReconciler(database, queries, payments, allocator), queries, payments
}

func seedPendingCheckout(t *testing.T, queries *db.Queries) db.PendingCheckout {
	t.Helper()
	ctx := context.Background()

	pending, err := queries.CreatePendingCheckout(ctx, db.CreatePendingCheckoutParams{
		ID:                 uuid.NewString(),
		CheckoutType:       "cart",
		ImageUrl:           "https://cdn.example.com/pending-art.png",
		UploadedFileName:   "family-crest.png",
		ShippingName:       "Pending Name",
		ShippingEmail:      "pending@example.com",
		ShippingPhone:      "555-0100",
		ShippingLine1:      "42 Pending Way",
		ShippingCity:       "Austin",
		ShippingState:      "TX",
		ShippingPostalCode: "78701",
		ShippingCountry:    "US",
		SubtotalCents:      1998,
		ShippingCents:      1299,
		AmountTotalCents:   3297,
	})
	require.NoError(t, err)

	_, err = queries.CreatePendingCheckoutItem(ctx, db.CreatePendingCheckoutItemParams{
		ID:                uuid.NewString(),
		PendingCheckoutID: pending.ID,
		Slug:              "wooden-coaster",
		Name:              "Wooden Coaster Set of 2",
		Quantity:          1,
		PriceCents:        1998,
		ImageUrl:          "https://cdn.example.com/item-art.png",
		UploadedFileName:  "family-crest-copy.png",
	})
	require.NoError(t, err)
	return pending
}

func paidSession(id string, pendingID string) *stripe.CheckoutSession {
	metadata := map[string]string{}
	if pendingID != "" {
		metadata[MetadataPendingOrderID] = pendingID
	}
	return &stripe.CheckoutSession{
		ID:            id,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal:   3297,
		Currency:      stripe.CurrencyUSD,
		Metadata:      metadata,
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "confirmed@example.com",
			Name:  "Confirmed Name",
			Phone: "555-0199",
		},
		ShippingDetails: &stripe.ShippingDetails{
			Name: "Confirmed Name",
			Address: &stripe.Address{
				Line1:      "1 Processor St",
				City:       "Denver",
				State:      "CO",
				PostalCode: "80202",
				Country:    "US",
			},
		},
		Customer:      &stripe.Customer{ID: "cus_123"},
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_123"},
	}
}

func TestReconcileSession_CommitsOrderExactlyOnce(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	pending := seedPendingCheckout(t, queries)
	payments.sessions["cs_1"] = paidSession("cs_1", pending.ID)

	first, err := r.ReconcileSession(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, first.Status)
	assert.Equal(t, "IL-0001", first.OrderID)

	// Redelivery writes nothing new.
	second, err := r.ReconcileSession(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, StatusDeduplicated, second.Status)
	assert.Equal(t, "IL-0001", second.OrderID)

	orders, err := queries.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "IL-0001", orders[0].ID)
	assert.Equal(t, int64(3297), orders[0].AmountTotalCents)
	assert.Equal(t, "paid", orders[0].PaymentStatus)

	items, err := queries.ListOrderItems(ctx, "IL-0001")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Wooden Coaster Set of 2", items[0].Name)

	completed, err := queries.GetPendingCheckout(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.True(t, completed.CompletedAt.Valid)
}

func TestReconcileSession_ProcessorDataWinsOverPending(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	pending := seedPendingCheckout(t, queries)
	payments.sessions["cs_2"] = paidSession("cs_2", pending.ID)

	result, err := r.ReconcileSession(ctx, "cs_2")
	require.NoError(t, err)

	assert.Equal(t, "confirmed@example.com", result.CustomerEmail)
	assert.Equal(t, "Confirmed Name", result.CustomerName)
	assert.Equal(t, "1 Processor St", result.Shipping.Line1)
	assert.Equal(t, "Denver", result.Shipping.City)
}

func TestReconcileSession_PendingFillsProcessorGaps(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	pending := seedPendingCheckout(t, queries)
	session := paidSession("cs_3", pending.ID)
	session.CustomerDetails.Phone = ""
	session.ShippingDetails = nil

	payments.sessions["cs_3"] = session

	result, err := r.ReconcileSession(ctx, "cs_3")
	require.NoError(t, err)

	assert.Equal(t, "555-0100", result.CustomerPhone)
	assert.Equal(t, "42 Pending Way", result.Shipping.Line1)
	assert.Equal(t, "Austin", result.Shipping.City)
}

func TestReconcileSession_UnpaidIsIgnored(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	session := paidSession("cs_4", "")
	session.PaymentStatus = stripe.CheckoutSessionPaymentStatusUnpaid
	payments.sessions["cs_4"] = session

	result, err := r.ReconcileSession(ctx, "cs_4")
	require.NoError(t, err)
	assert.Equal(t, StatusIgnored, result.Status)

	orders, err := queries.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestReconcileSession_MissingPendingFallsBackToLineItems(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	session := paidSession("cs_5", "pc_gone")
	session.LineItems = &stripe.LineItemList{
		Data: []*stripe.LineItem{
			{Description: "Slate Coaster", Quantity: 2, AmountTotal: 2994},
		},
	}
	payments.sessions["cs_5"] = session

	result, err := r.ReconcileSession(ctx, "cs_5")
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, result.Status)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Slate Coaster", result.Items[0].Name)
	assert.Equal(t, int64(2), result.Items[0].Quantity)

	orders, err := queries.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestReconcileSession_BackfillsShippingOnRedelivery(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	// First delivery has no address at all.
	bare := paidSession("cs_6", "")
	bare.ShippingDetails = nil
	bare.LineItems = &stripe.LineItemList{
		Data: []*stripe.LineItem{{Description: "Slate Coaster", Quantity: 1, AmountTotal: 1497}},
	}
	payments.sessions["cs_6"] = bare

	first, err := r.ReconcileSession(ctx, "cs_6")
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, first.Status)
	assert.True(t, first.Shipping.Empty())

	// Redelivery carries the address; the existing order gains it.
	payments.sessions["cs_6"] = paidSession("cs_6", "")

	second, err := r.ReconcileSession(ctx, "cs_6")
	require.NoError(t, err)
	assert.Equal(t, StatusDeduplicated, second.Status)

	order, err := queries.GetOrder(ctx, first.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "1 Processor St", order.ShippingLine1)
	assert.Equal(t, "Denver", order.ShippingCity)
}

func TestReconcileSession_UpsertsCustomer(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	pending := seedPendingCheckout(t, queries)
	payments.sessions["cs_7"] = paidSession("cs_7", pending.ID)

	_, err := r.ReconcileSession(ctx, "cs_7")
	require.NoError(t, err)

	customer, err := queries.GetCustomer(ctx, "cus_123")
	require.NoError(t, err)
	assert.Equal(t, "confirmed@example.com", customer.Email)
	assert.Equal(t, "1 Processor St", customer.ShippingLine1)
}

func TestReconcilePaymentIntent_CommitsAndDedups(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	pending := seedPendingCheckout(t, queries)
	payments.intents["pi_9"] = &stripe.PaymentIntent{
		ID:             "pi_9",
		Status:         stripe.PaymentIntentStatusSucceeded,
		Amount:         3297,
		AmountReceived: 3297,
		Currency:       stripe.CurrencyUSD,
		Metadata:       map[string]string{MetadataPendingOrderID: pending.ID},
		LatestCharge: &stripe.Charge{
			BillingDetails: &stripe.ChargeBillingDetails{
				Email: "billing@example.com",
				Name:  "Billing Name",
			},
		},
	}

	first, err := r.ReconcilePaymentIntent(ctx, "pi_9")
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, first.Status)
	assert.Equal(t, "IL-0001", first.OrderID)
	assert.Equal(t, "billing@example.com", first.CustomerEmail)
	// No shipping on the intent or charge; pending supplies the address.
	assert.Equal(t, "42 Pending Way", first.Shipping.Line1)

	second, err := r.ReconcilePaymentIntent(ctx, "pi_9")
	require.NoError(t, err)
	assert.Equal(t, StatusDeduplicated, second.Status)
	assert.Equal(t, "IL-0001", second.OrderID)

	orders, err := queries.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestReconcilePaymentIntent_NotSucceededIsIgnored(t *testing.T) {
	r, _, payments := newTestReconciler(t)
	payments.intents["pi_10"] = &stripe.PaymentIntent{
		ID:     "pi_10",
		Status: stripe.PaymentIntentStatusRequiresPaymentMethod,
	}

	result, err := r.ReconcilePaymentIntent(context.Background(), "pi_10")
	require.NoError(t, err)
	assert.Equal(t, StatusIgnored, result.Status)
}

func TestReconcileSession_CheckoutArtworkOutranksLineItemArtwork(t *testing.T) {
	r, queries, payments := newTestReconciler(t)
	ctx := context.Background()

	pending := seedPendingCheckout(t, queries)
	payments.sessions["cs_art"] = paidSession("cs_art", pending.ID)

	result, err := r.ReconcileSession(ctx, "cs_art")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "https://cdn.example.com/pending-art.png", result.Items[0].ImageURL)
	assert.Equal(t, "family-crest.png", result.Items[0].UploadedFileName)

	order, err := queries.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pending-art.png", order.ImageUrl)

	// Payment metadata outranks both stored copies.
	pending2 := seedPendingCheckout(t, queries)
	session := paidSession("cs_art2", pending2.ID)
	session.Metadata[MetadataImageURL] = "https://cdn.example.com/session-art.png"
	payments.sessions["cs_art2"] = session

	result, err = r.ReconcileSession(ctx, "cs_art2")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "https://cdn.example.com/session-art.png", result.Items[0].ImageURL)
}

func TestReconcileSession_FailedItemWriteLeavesNoOrder(t *testing.T) {
	database, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	payments := &fakePayments{
		sessions: make(map[string]*stripe.CheckoutSession),
		intents:  make(map[string]*stripe.PaymentIntent),
	}
	allocator := orderid.NewAllocator(database, queries, orderid.DefaultPrefix, orderid.DefaultWidth)
	r := NewReconciler(database, queries, payments, allocator)
	ctx := context.Background()

	pending := seedPendingCheckout(t, queries)
	payments.sessions["cs_atomic"] = paidSession("cs_atomic", pending.ID)

	// Make the item insert fail after the order insert succeeds.
	_, err = database.ExecContext(ctx, "DROP TABLE order_items")
	require.NoError(t, err)

	_, err = r.ReconcileSession(ctx, "cs_atomic")
	require.Error(t, err)

	orders, err := queries.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	still, err := queries.GetPendingCheckout(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", still.Status)

	// Redelivery after recovery writes the full order, items included,
	// rather than backfilling an item-less remnant.
	_, err = database.ExecContext(ctx, `CREATE TABLE order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price_cents INTEGER NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		uploaded_file_name TEXT NOT NULL DEFAULT ''
	)`)
	require.NoError(t, err)

	result, err := r.ReconcileSession(ctx, "cs_atomic")
	require.NoError(t, err)
	assert.Equal(t, StatusCommitted, result.Status)

	items, err := queries.ListOrderItems(ctx, result.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Wooden Coaster Set of 2", items[0].Name)

	completed, err := queries.GetPendingCheckout(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
}

func TestReconcileSession_SequentialIdsAcrossPayments(t *testing.T) {
	r, _, payments := newTestReconciler(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("cs_seq_%d", i)
		s := paidSession(id, "")
		s.LineItems = &stripe.LineItemList{
			Data: []*stripe.LineItem{{Description: "Slate Coaster", Quantity: 1, AmountTotal: 1497}},
		}
		payments.sessions[id] = s

		result, err := r.ReconcileSession(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("IL-%04d", i), result.OrderID)
	}
}
