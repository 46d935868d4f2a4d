// Package reconcile turns verified payment events into durable orders.
//
// The reconciler never trusts the webhook payload body: it re-fetches the
// session or payment intent from Stripe, merges what the customer entered
// during checkout (the pending checkout) with what the payment processor
// confirmed, and writes the order exactly once per payment reference.
package reconcile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ironleafengravings/storefront/storage/db"
	"github.com/oklog/ulid/v2"
	"github.com/stripe/stripe-go/v80"
)

// MetadataPendingOrderID is the Stripe metadata key linking a session or
// payment intent back to the pending checkout it was created from.
const MetadataPendingOrderID = "pendingOrderId"

// Metadata keys for single-product buy-now flows, where artwork is attached
// to the payment rather than a pending checkout.
const (
	MetadataImageURL         = "imageUrl"
	MetadataUploadedFileName = "uploadedFileName"
	MetadataProductSlug      = "productSlug"
)

// Status classifies what reconciliation did with an event.
type Status string

const (
	// StatusCommitted means a new order was written.
	StatusCommitted Status = "committed"
	// StatusDeduplicated means the order already existed for this payment
	// reference; at most missing fields were backfilled.
	StatusDeduplicated Status = "deduplicated"
	// StatusIgnored means the event carried no completed payment.
	StatusIgnored Status = "ignored"
)

// Address is a merged postal address.
type Address struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

func (a Address) Empty() bool {
	return a.Line1 == "" && a.City == ""
}

// Item is a purchased line after merging.
type Item struct {
	Slug             string
	Name             string
	Quantity         int64
	AmountCents      int64
	ImageURL         string
	UploadedFileName string
}

// Result reports the reconciliation outcome plus the merged order data the
// notification fan-out needs.
type Result struct {
	Status        Status
	Reason        string
	OrderID       string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	Shipping      Address
	AmountCents   int64
	Currency      string
	Items         []Item
}

// PaymentsAPI is the slice of the Stripe client the reconciler uses.
type PaymentsAPI interface {
	GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
	GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
}

// Allocator maps payment references to order ids, idempotently.
type Allocator interface {
	Allocate(ctx context.Context, paymentReference string) (string, error)
}

type Reconciler struct {
	db        *sql.DB
	queries   *db.Queries
	payments  PaymentsAPI
	allocator Allocator
}

func NewReconciler(database *sql.DB, queries *db.Queries, payments PaymentsAPI, allocator Allocator) *Reconciler {
	return &Reconciler{
		db:        database,
		queries:   queries,
		payments:  payments,
		allocator: allocator,
	}
}

// ReconcileSession handles a checkout.session.completed event.
func (r *Reconciler) ReconcileSession(ctx context.Context, sessionID string) (*Result, error) {
	session, err := r.payments.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetch checkout session %s: %w", sessionID, err)
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		slog.Info("ignoring unpaid checkout session", "session_id", sessionID, "payment_status", session.PaymentStatus)
		return &Result{Status: StatusIgnored, Reason: "payment not completed"}, nil
	}

	pending, pendingItems := r.loadPending(ctx, session.Metadata[MetadataPendingOrderID], sessionID)

	orderID, err := r.allocator.Allocate(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	merged := r.mergeSession(orderID, session, pending, pendingItems)

	paymentIntentID := ""
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}
	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}

	return r.commit(ctx, merged, commitRefs{
		sessionID:       session.ID,
		paymentIntentID: paymentIntentID,
		customerID:      customerID,
		pending:         pending,
	})
}

// ReconcilePaymentIntent handles a payment_intent.succeeded event for
// session-less payment element flows. Sessions that also emit this event are
// deduplicated by the shared order reference on the session id, so the
// caller should only route intents without an attached session here.
func (r *Reconciler) ReconcilePaymentIntent(ctx context.Context, paymentIntentID string) (*Result, error) {
	pi, err := r.payments.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("fetch payment intent %s: %w", paymentIntentID, err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		slog.Info("ignoring non-succeeded payment intent", "payment_intent_id", paymentIntentID, "status", pi.Status)
		return &Result{Status: StatusIgnored, Reason: "payment not completed"}, nil
	}

	pending, pendingItems := r.loadPending(ctx, pi.Metadata[MetadataPendingOrderID], paymentIntentID)

	orderID, err := r.allocator.Allocate(ctx, pi.ID)
	if err != nil {
		return nil, err
	}

	merged := r.mergeIntent(orderID, pi, pending, pendingItems)

	customerID := ""
	if pi.Customer != nil {
		customerID = pi.Customer.ID
	}

	return r.commit(ctx, merged, commitRefs{
		paymentIntentID: pi.ID,
		customerID:      customerID,
		pending:         pending,
	})
}

// loadPending fetches the pending checkout named by metadata, if any.
// A missing record is degraded-but-ok: the payment already happened, so the
// order is still written from processor data alone.
func (r *Reconciler) loadPending(ctx context.Context, pendingID, paymentRef string) (*db.PendingCheckout, []db.PendingCheckoutItem) {
	if pendingID == "" {
		return nil, nil
	}

	pending, err := r.queries.GetPendingCheckout(ctx, pendingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("pending checkout referenced by payment not found",
				"pending_checkout_id", pendingID, "payment_reference", paymentRef)
		} else {
			slog.Error("failed to load pending checkout",
				"error", err, "pending_checkout_id", pendingID, "payment_reference", paymentRef)
		}
		return nil, nil
	}

	items, err := r.queries.ListPendingCheckoutItems(ctx, pendingID)
	if err != nil {
		slog.Error("failed to load pending checkout items", "error", err, "pending_checkout_id", pendingID)
	}
	return &pending, items
}

type commitRefs struct {
	sessionID       string
	paymentIntentID string
	customerID      string
	pending         *db.PendingCheckout
}

// commit writes the merged order unless one already exists for this order
// id, in which case it backfills missing contact and shipping fields.
func (r *Reconciler) commit(ctx context.Context, merged *Result, refs commitRefs) (*Result, error) {
	existing, err := r.queries.GetOrder(ctx, merged.OrderID)
	if err == nil {
		return r.backfill(ctx, existing, merged, refs)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lookup order %s: %w", merged.OrderID, err)
	}

	primary := primaryItem(merged.Items)
	order := db.CreateOrderParams{
		ID:                    merged.OrderID,
		StripeSessionID:       nullString(refs.sessionID),
		StripePaymentIntentID: nullString(refs.paymentIntentID),
		StripeCustomerID:      nullString(refs.customerID),
		CustomerEmail:         merged.CustomerEmail,
		CustomerName:          merged.CustomerName,
		CustomerPhone:         merged.CustomerPhone,
		ShippingName:          merged.Shipping.Name,
		ShippingLine1:         merged.Shipping.Line1,
		ShippingLine2:         merged.Shipping.Line2,
		ShippingCity:          merged.Shipping.City,
		ShippingState:         merged.Shipping.State,
		ShippingPostalCode:    merged.Shipping.PostalCode,
		ShippingCountry:       merged.Shipping.Country,
		AmountTotalCents:      merged.AmountCents,
		ShippingCents:         pendingShippingCents(refs.pending),
		Currency:              merged.Currency,
		PaymentStatus:         "paid",
		ProductSlug:           primary.Slug,
		UploadedFileName:      primary.UploadedFileName,
		ImageUrl:              primary.ImageURL,
	}
	if refs.pending != nil {
		order.PendingCheckoutID = nullString(refs.pending.ID)
	}

	// The order row, its items, and the pending-checkout completion land
	// together or not at all. A half-written order would make every
	// redelivery take the backfill path, which never writes items.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if _, err := qtx.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order %s: %w", merged.OrderID, err)
	}

	for _, item := range merged.Items {
		if _, err := qtx.CreateOrderItem(ctx, db.CreateOrderItemParams{
			ID:               ulid.Make().String(),
			OrderID:          merged.OrderID,
			Name:             item.Name,
			Quantity:         item.Quantity,
			PriceCents:       item.AmountCents,
			ImageUrl:         item.ImageURL,
			UploadedFileName: item.UploadedFileName,
		}); err != nil {
			return nil, fmt.Errorf("create order item for %s: %w", merged.OrderID, err)
		}
	}

	r.completePending(ctx, qtx, refs)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order %s: %w", merged.OrderID, err)
	}

	if refs.customerID != "" {
		if err := r.queries.UpsertCustomer(ctx, db.UpsertCustomerParams{
			StripeCustomerID:   refs.customerID,
			Email:              merged.CustomerEmail,
			Name:               merged.CustomerName,
			Phone:              merged.CustomerPhone,
			ShippingName:       merged.Shipping.Name,
			ShippingLine1:      merged.Shipping.Line1,
			ShippingLine2:      merged.Shipping.Line2,
			ShippingCity:       merged.Shipping.City,
			ShippingState:      merged.Shipping.State,
			ShippingPostalCode: merged.Shipping.PostalCode,
			ShippingCountry:    merged.Shipping.Country,
		}); err != nil {
			slog.Error("failed to upsert customer", "error", err, "stripe_customer_id", refs.customerID)
		}
	}

	merged.Status = StatusCommitted
	slog.Info("order committed",
		"order_id", merged.OrderID,
		"amount_cents", merged.AmountCents,
		"items", len(merged.Items))
	return merged, nil
}

// backfill handles a redelivered event for an already-written order. Missing
// contact and shipping fields are filled from the merged data; populated
// fields are never overwritten.
func (r *Reconciler) backfill(ctx context.Context, existing db.Order, merged *Result, refs commitRefs) (*Result, error) {
	if !merged.Shipping.Empty() {
		if err := r.queries.UpdateOrderShippingIfMissing(ctx, db.UpdateOrderShippingIfMissingParams{
			ShippingName:       merged.Shipping.Name,
			ShippingLine1:      merged.Shipping.Line1,
			ShippingLine2:      merged.Shipping.Line2,
			ShippingCity:       merged.Shipping.City,
			ShippingState:      merged.Shipping.State,
			ShippingPostalCode: merged.Shipping.PostalCode,
			ShippingCountry:    merged.Shipping.Country,
			ID:                 existing.ID,
		}); err != nil {
			slog.Error("failed to backfill order shipping", "error", err, "order_id", existing.ID)
		}
	}
	if merged.CustomerEmail != "" {
		if err := r.queries.UpdateOrderCustomerIfMissing(ctx, db.UpdateOrderCustomerIfMissingParams{
			CustomerEmail: merged.CustomerEmail,
			CustomerName:  merged.CustomerName,
			CustomerPhone: merged.CustomerPhone,
			ID:            existing.ID,
		}); err != nil {
			slog.Error("failed to backfill order customer", "error", err, "order_id", existing.ID)
		}
	}

	r.completePending(ctx, r.queries, refs)

	order, err := r.queries.GetOrder(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order %s: %w", existing.ID, err)
	}
	items, err := r.queries.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load order items %s: %w", order.ID, err)
	}

	result := resultFromOrder(order, items)
	result.Status = StatusDeduplicated
	slog.Info("duplicate payment event deduplicated", "order_id", order.ID)
	return result, nil
}

func (r *Reconciler) completePending(ctx context.Context, q *db.Queries, refs commitRefs) {
	if refs.pending == nil {
		return
	}
	if err := q.MarkPendingCheckoutCompleted(ctx, db.MarkPendingCheckoutCompletedParams{
		StripeSessionID:       nullString(refs.sessionID),
		StripePaymentIntentID: nullString(refs.paymentIntentID),
		ID:                    refs.pending.ID,
	}); err != nil {
		slog.Error("failed to mark pending checkout completed", "error", err, "pending_checkout_id", refs.pending.ID)
	}
}

// mergeSession combines processor-confirmed session data with the pending
// checkout. Processor data wins; pending data fills gaps; line-item data is
// the last resort.
func (r *Reconciler) mergeSession(orderID string, session *stripe.CheckoutSession, pending *db.PendingCheckout, pendingItems []db.PendingCheckoutItem) *Result {
	result := &Result{
		OrderID:     orderID,
		AmountCents: session.AmountTotal,
		Currency:    string(session.Currency),
	}

	var detailEmail, detailName, detailPhone string
	var detailAddr *stripe.Address
	if session.CustomerDetails != nil {
		detailEmail = session.CustomerDetails.Email
		detailName = session.CustomerDetails.Name
		detailPhone = session.CustomerDetails.Phone
		detailAddr = session.CustomerDetails.Address
	}

	result.CustomerEmail = firstNonEmpty(detailEmail, pendingEmail(pending))
	result.CustomerName = firstNonEmpty(detailName, pendingName(pending))
	result.CustomerPhone = firstNonEmpty(detailPhone, pendingPhone(pending))

	if session.ShippingDetails != nil && session.ShippingDetails.Address != nil && session.ShippingDetails.Address.Line1 != "" {
		result.Shipping = addressFrom(firstNonEmpty(session.ShippingDetails.Name, result.CustomerName), session.ShippingDetails.Address)
	} else if addr := pendingAddress(pending); !addr.Empty() {
		result.Shipping = addr
	} else if detailAddr != nil {
		result.Shipping = addressFrom(result.CustomerName, detailAddr)
	}

	result.Items = mergeItems(session, pending, pendingItems)
	return result
}

// mergeIntent is the payment-element counterpart of mergeSession. Billing
// details from the latest charge are the fallback address source.
func (r *Reconciler) mergeIntent(orderID string, pi *stripe.PaymentIntent, pending *db.PendingCheckout, pendingItems []db.PendingCheckoutItem) *Result {
	amount := pi.AmountReceived
	if amount == 0 {
		amount = pi.Amount
	}
	result := &Result{
		OrderID:     orderID,
		AmountCents: amount,
		Currency:    string(pi.Currency),
	}

	var billEmail, billName, billPhone string
	var billAddr *stripe.Address
	if pi.LatestCharge != nil {
		if bd := pi.LatestCharge.BillingDetails; bd != nil {
			billEmail = bd.Email
			billName = bd.Name
			billPhone = bd.Phone
			billAddr = bd.Address
		}
	}

	result.CustomerEmail = firstNonEmpty(pi.ReceiptEmail, billEmail, pendingEmail(pending))
	result.CustomerName = firstNonEmpty(billName, pendingName(pending))
	result.CustomerPhone = firstNonEmpty(billPhone, pendingPhone(pending))

	if pi.Shipping != nil && pi.Shipping.Address != nil && pi.Shipping.Address.Line1 != "" {
		result.Shipping = addressFrom(firstNonEmpty(pi.Shipping.Name, result.CustomerName), pi.Shipping.Address)
	} else if addr := pendingAddress(pending); !addr.Empty() {
		result.Shipping = addr
	} else if billAddr != nil {
		result.Shipping = addressFrom(result.CustomerName, billAddr)
	}

	result.Items = itemsFromPending(pi.Metadata, pending, pendingItems)
	if len(result.Items) == 0 {
		// No pending checkout survived; record the payment as a single
		// opaque line so the order still totals correctly.
		result.Items = []Item{{
			Slug:             pi.Metadata[MetadataProductSlug],
			Name:             firstNonEmpty(pi.Description, "Order"),
			Quantity:         1,
			AmountCents:      amount,
			ImageURL:         pi.Metadata[MetadataImageURL],
			UploadedFileName: pi.Metadata[MetadataUploadedFileName],
		}}
	}
	return result
}

func mergeItems(session *stripe.CheckoutSession, pending *db.PendingCheckout, pendingItems []db.PendingCheckoutItem) []Item {
	if items := itemsFromPending(session.Metadata, pending, pendingItems); len(items) > 0 {
		return items
	}

	var items []Item
	if session.LineItems != nil {
		for _, li := range session.LineItems.Data {
			items = append(items, Item{
				Name:             li.Description,
				Quantity:         li.Quantity,
				AmountCents:      li.AmountTotal,
				ImageURL:         session.Metadata[MetadataImageURL],
				UploadedFileName: session.Metadata[MetadataUploadedFileName],
			})
		}
	}
	return items
}

// itemsFromPending builds the item list from the pending checkout. Artwork
// priority per line: payment metadata, then the pending checkout header,
// then the pending line.
func itemsFromPending(metadata map[string]string, pending *db.PendingCheckout, pendingItems []db.PendingCheckoutItem) []Item {
	if pending == nil {
		return nil
	}

	metaImage := metadata[MetadataImageURL]
	metaFile := metadata[MetadataUploadedFileName]

	if len(pendingItems) == 0 {
		if pending.ProductSlug == "" {
			return nil
		}
		return []Item{{
			Slug:             pending.ProductSlug,
			Name:             pending.ProductSlug,
			Quantity:         1,
			AmountCents:      pending.SubtotalCents,
			ImageURL:         firstNonEmpty(metaImage, pending.ImageUrl),
			UploadedFileName: firstNonEmpty(metaFile, pending.UploadedFileName),
		}}
	}

	items := make([]Item, 0, len(pendingItems))
	for _, pi := range pendingItems {
		items = append(items, Item{
			Slug:             pi.Slug,
			Name:             pi.Name,
			Quantity:         pi.Quantity,
			AmountCents:      pi.PriceCents * pi.Quantity,
			ImageURL:         firstNonEmpty(metaImage, pending.ImageUrl, pi.ImageUrl),
			UploadedFileName: firstNonEmpty(metaFile, pending.UploadedFileName, pi.UploadedFileName),
		})
	}
	return items
}

func resultFromOrder(order db.Order, items []db.OrderItem) *Result {
	result := &Result{
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		AmountCents:   order.AmountTotalCents,
		Currency:      order.Currency,
		Shipping: Address{
			Name:       order.ShippingName,
			Line1:      order.ShippingLine1,
			Line2:      order.ShippingLine2,
			City:       order.ShippingCity,
			State:      order.ShippingState,
			PostalCode: order.ShippingPostalCode,
			Country:    order.ShippingCountry,
		},
	}
	for _, item := range items {
		result.Items = append(result.Items, Item{
			Name:             item.Name,
			Quantity:         item.Quantity,
			AmountCents:      item.PriceCents,
			ImageURL:         item.ImageUrl,
			UploadedFileName: item.UploadedFileName,
		})
	}
	return result
}

func addressFrom(name string, a *stripe.Address) Address {
	return Address{
		Name:       name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func pendingAddress(p *db.PendingCheckout) Address {
	if p == nil {
		return Address{}
	}
	return Address{
		Name:       p.ShippingName,
		Line1:      p.ShippingLine1,
		Line2:      p.ShippingLine2,
		City:       p.ShippingCity,
		State:      p.ShippingState,
		PostalCode: p.ShippingPostalCode,
		Country:    p.ShippingCountry,
	}
}

func pendingEmail(p *db.PendingCheckout) string {
	if p == nil {
		return ""
	}
	return p.ShippingEmail
}

func pendingName(p *db.PendingCheckout) string {
	if p == nil {
		return ""
	}
	return p.ShippingName
}

func pendingPhone(p *db.PendingCheckout) string {
	if p == nil {
		return ""
	}
	return p.ShippingPhone
}

func pendingShippingCents(p *db.PendingCheckout) int64 {
	if p == nil {
		return 0
	}
	return p.ShippingCents
}

func primaryItem(items []Item) Item {
	if len(items) == 0 {
		return Item{}
	}
	return items[0]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
