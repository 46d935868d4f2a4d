package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ironleafengravings/storefront/internal/orderid"
	"github.com/ironleafengravings/storefront/internal/reconcile"
	"github.com/ironleafengravings/storefront/internal/webhook"
	"github.com/ironleafengravings/storefront/storage/db"
	"github.com/labstack/echo/v4"
	stripego "github.com/stripe/stripe-go/v80"
)

// Reconciler turns a verified payment event into a durable order.
type Reconciler interface {
	ReconcileSession(ctx context.Context, sessionID string) (*reconcile.Result, error)
	ReconcilePaymentIntent(ctx context.Context, paymentIntentID string) (*reconcile.Result, error)
}

// Notifier dispatches post-order notifications.
type Notifier interface {
	NotifyOrder(ctx context.Context, order *reconcile.Result)
}

type PaymentHandler struct {
	verifier   *webhook.Verifier
	reconciler Reconciler
	notifier   Notifier
	queries    *db.Queries
}

func NewPaymentHandler(verifier *webhook.Verifier, reconciler Reconciler, notifier Notifier, queries *db.Queries) *PaymentHandler {
	return &PaymentHandler{
		verifier:   verifier,
		reconciler: reconciler,
		notifier:   notifier,
		queries:    queries,
	}
}

type webhookResponse struct {
	Received bool   `json:"received"`
	Deduped  bool   `json:"deduped,omitempty"`
	Ignored  string `json:"ignored,omitempty"`
}

// HandleWebhook processes Stripe webhook deliveries. A non-2xx response
// makes Stripe retry, so only failures we want retried return one: a broken
// signature or body is a permanent 400, and an order that could not be
// written is a 500.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}

	event, err := h.verifier.Verify(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, webhook.ErrMissingSecret) {
			slog.Error("webhook secret not configured")
			return echo.NewHTTPError(http.StatusInternalServerError, "Webhook not configured")
		}
		slog.Error("webhook signature verification failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid signature")
	}

	ctx := c.Request().Context()

	switch string(event.Type) {
	case webhook.EventCheckoutSessionCompleted:
		var session stripego.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			slog.Error("error parsing checkout session from event", "error", err, "event_id", event.ID)
			return echo.NewHTTPError(http.StatusBadRequest, "Error parsing webhook JSON")
		}
		result, err := h.reconciler.ReconcileSession(ctx, session.ID)
		return h.respond(c, result, err)

	case webhook.EventPaymentIntentSucceeded:
		var paymentIntent stripego.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Error parsing webhook JSON")
		}
		// Session checkouts emit this event too; their orders are written
		// from checkout.session.completed. Only payment-element intents
		// carry the pending checkout reference directly.
		if paymentIntent.Metadata[reconcile.MetadataPendingOrderID] == "" {
			slog.Debug("ignoring payment intent without checkout reference", "payment_intent_id", paymentIntent.ID)
			return c.JSON(http.StatusOK, webhookResponse{Received: true, Ignored: "no checkout reference"})
		}
		result, err := h.reconciler.ReconcilePaymentIntent(ctx, paymentIntent.ID)
		return h.respond(c, result, err)

	default:
		slog.Debug("unhandled webhook event type", "type", event.Type)
		return c.JSON(http.StatusOK, webhookResponse{Received: true, Ignored: "unhandled event type"})
	}
}

func (h *PaymentHandler) respond(c echo.Context, result *reconcile.Result, err error) error {
	if err != nil {
		if errors.Is(err, orderid.ErrAllocationFailed) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Order allocation failed")
		}
		slog.Error("payment reconciliation failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Reconciliation failed")
	}

	switch result.Status {
	case reconcile.StatusCommitted:
		// Notifications are best-effort and must not delay the webhook
		// acknowledgement.
		go h.notifier.NotifyOrder(context.Background(), result)
		return c.JSON(http.StatusOK, webhookResponse{Received: true})
	case reconcile.StatusDeduplicated:
		return c.JSON(http.StatusOK, webhookResponse{Received: true, Deduped: true})
	default:
		return c.JSON(http.StatusOK, webhookResponse{Received: true, Ignored: result.Reason})
	}
}

type orderLookupResponse struct {
	OrderID *string `json:"orderId"`
}

// HandleOrderLookup resolves a Stripe payment reference (checkout session or
// payment intent id) to the allocated order id. The thank-you page polls
// this while the webhook race settles.
func (h *PaymentHandler) HandleOrderLookup(c echo.Context) error {
	reference := c.QueryParam("reference")
	if reference == "" {
		reference = c.QueryParam("session_id")
	}
	if reference == "" {
		reference = c.QueryParam("payment_intent")
	}
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing reference parameter")
	}

	ref, err := h.queries.GetOrderReference(c.Request().Context(), reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, orderLookupResponse{OrderID: nil})
		}
		slog.Error("failed to look up order reference", "error", err, "payment_reference", reference)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up order")
	}
	return c.JSON(http.StatusOK, orderLookupResponse{OrderID: &ref.OrderID})
}
