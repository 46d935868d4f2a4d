package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ironleafengravings/storefront/internal/pricing"
	"github.com/ironleafengravings/storefront/internal/reconcile"
	"github.com/ironleafengravings/storefront/internal/stripe"
	"github.com/ironleafengravings/storefront/storage/db"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	stripego "github.com/stripe/stripe-go/v80"
)

type CheckoutHandler struct {
	queries  *db.Queries
	stripe   *stripe.Client
	baseURL  string
	currency string
}

func NewCheckoutHandler(queries *db.Queries, stripeClient *stripe.Client, baseURL, currency string) *CheckoutHandler {
	if currency == "" {
		currency = "usd"
	}
	return &CheckoutHandler{
		queries:  queries,
		stripe:   stripeClient,
		baseURL:  baseURL,
		currency: currency,
	}
}

type checkoutItemRequest struct {
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Quantity         int64  `json:"quantity"`
	PriceCents       int64  `json:"priceCents"`
	CoasterSetSize   int64  `json:"coasterSetSize,omitempty"`
	ImageURL         string `json:"imageUrl,omitempty"`
	UploadedFileName string `json:"uploadedFileName,omitempty"`
}

type checkoutShippingRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type checkoutRequest struct {
	Items    []checkoutItemRequest   `json:"items"`
	Shipping checkoutShippingRequest `json:"shipping"`
}

// priceCheckout recomputes all amounts server-side and stages the checkout
// as a pending record. Client-sent prices are only ever a fallback for
// non-coaster products.
func (h *CheckoutHandler) priceCheckout(c echo.Context, req *checkoutRequest, checkoutType string) (*db.PendingCheckout, int64, error) {
	if len(req.Items) == 0 {
		return nil, 0, echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
	}

	shippingCents, ok := pricing.ShippingCents(req.Shipping.Country)
	if !ok {
		return nil, 0, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("We don't ship to %q yet", req.Shipping.Country))
	}

	var subtotal int64
	priced := make([]int64, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, 0, echo.NewHTTPError(http.StatusBadRequest, "Item quantity must be positive")
		}
		unit := pricing.NormalizeItemPriceCents(pricing.Item{
			Slug:           item.Slug,
			Name:           item.Name,
			PriceCents:     item.PriceCents,
			CoasterSetSize: item.CoasterSetSize,
		}, 0)
		priced[i] = unit
		subtotal += unit * item.Quantity
	}
	total := subtotal + shippingCents

	ctx := c.Request().Context()
	pending, err := h.queries.CreatePendingCheckout(ctx, db.CreatePendingCheckoutParams{
		ID:                 ulid.Make().String(),
		CheckoutType:       checkoutType,
		ProductSlug:        req.Items[0].Slug,
		UploadedFileName:   req.Items[0].UploadedFileName,
		ImageUrl:           req.Items[0].ImageURL,
		ShippingName:       req.Shipping.Name,
		ShippingEmail:      req.Shipping.Email,
		ShippingPhone:      req.Shipping.Phone,
		ShippingLine1:      req.Shipping.Line1,
		ShippingLine2:      req.Shipping.Line2,
		ShippingCity:       req.Shipping.City,
		ShippingState:      req.Shipping.State,
		ShippingPostalCode: req.Shipping.PostalCode,
		ShippingCountry:    pricing.NormalizeCountry(req.Shipping.Country),
		SubtotalCents:      subtotal,
		ShippingCents:      shippingCents,
		AmountTotalCents:   total,
	})
	if err != nil {
		slog.Error("failed to create pending checkout", "error", err)
		return nil, 0, echo.NewHTTPError(http.StatusInternalServerError, "Failed to stage checkout")
	}

	for i, item := range req.Items {
		setSize := sql.NullInt64{Int64: item.CoasterSetSize, Valid: item.CoasterSetSize > 0}
		if _, err := h.queries.CreatePendingCheckoutItem(ctx, db.CreatePendingCheckoutItemParams{
			ID:                ulid.Make().String(),
			PendingCheckoutID: pending.ID,
			Slug:              item.Slug,
			Name:              item.Name,
			Quantity:          item.Quantity,
			PriceCents:        priced[i],
			CoasterSetSize:    setSize,
			ImageUrl:          item.ImageURL,
			UploadedFileName:  item.UploadedFileName,
		}); err != nil {
			slog.Error("failed to create pending checkout item", "error", err, "pending_checkout_id", pending.ID)
			return nil, 0, echo.NewHTTPError(http.StatusInternalServerError, "Failed to stage checkout")
		}
	}

	return &pending, total, nil
}

type createIntentResponse struct {
	ClientSecret      string `json:"clientSecret"`
	PendingCheckoutID string `json:"pendingCheckoutId"`
	AmountCents       int64  `json:"amountCents"`
}

// HandleCreateIntent stages a pending checkout and creates a payment intent
// for the embedded payment element flow.
func (h *CheckoutHandler) HandleCreateIntent(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	pending, total, err := h.priceCheckout(c, &req, "payment_element")
	if err != nil {
		return err
	}

	params := &stripego.PaymentIntentParams{
		Amount:   stripego.Int64(total),
		Currency: stripego.String(h.currency),
		AutomaticPaymentMethods: &stripego.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripego.Bool(true),
		},
	}
	if req.Shipping.Email != "" {
		params.ReceiptEmail = stripego.String(req.Shipping.Email)
	}
	params.AddMetadata(reconcile.MetadataPendingOrderID, pending.ID)
	if req.Items[0].ImageURL != "" {
		params.AddMetadata(reconcile.MetadataImageURL, req.Items[0].ImageURL)
	}
	if req.Items[0].UploadedFileName != "" {
		params.AddMetadata(reconcile.MetadataUploadedFileName, req.Items[0].UploadedFileName)
	}

	intent, err := h.stripe.CreatePaymentIntent(c.Request().Context(), params)
	if err != nil {
		slog.Error("failed to create payment intent", "error", err, "pending_checkout_id", pending.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create payment intent")
	}

	if err := h.queries.LinkPendingCheckoutPaymentIntent(c.Request().Context(), db.LinkPendingCheckoutPaymentIntentParams{
		StripePaymentIntentID: sql.NullString{String: intent.ID, Valid: true},
		ID:                    pending.ID,
	}); err != nil {
		slog.Error("failed to link payment intent to pending checkout", "error", err, "pending_checkout_id", pending.ID)
	}

	return c.JSON(http.StatusOK, createIntentResponse{
		ClientSecret:      intent.ClientSecret,
		PendingCheckoutID: pending.ID,
		AmountCents:       total,
	})
}

type createSessionResponse struct {
	URL               string `json:"url"`
	SessionID         string `json:"sessionId"`
	PendingCheckoutID string `json:"pendingCheckoutId"`
}

// HandleCreateSession stages a pending checkout and creates a hosted
// checkout session.
func (h *CheckoutHandler) HandleCreateSession(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	pending, _, err := h.priceCheckout(c, &req, "hosted_checkout")
	if err != nil {
		return err
	}

	items, err := h.queries.ListPendingCheckoutItems(c.Request().Context(), pending.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to stage checkout")
	}

	lineItems := make([]*stripego.CheckoutSessionLineItemParams, 0, len(items)+1)
	for _, item := range items {
		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripego.String(h.currency),
				UnitAmount: stripego.Int64(item.PriceCents),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(item.Name),
				},
			},
			Quantity: stripego.Int64(item.Quantity),
		})
	}
	lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
		PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripego.String(h.currency),
			UnitAmount: stripego.Int64(pending.ShippingCents),
			ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripego.String("Shipping"),
			},
		},
		Quantity: stripego.Int64(1),
	})

	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripego.String(h.baseURL + "/thank-you?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripego.String(h.baseURL + "/cart"),
		ShippingAddressCollection: &stripego.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripego.StringSlice([]string{"US", "CA", "GB", "NZ"}),
		},
		PhoneNumberCollection: &stripego.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripego.Bool(true),
		},
	}
	if req.Shipping.Email != "" {
		params.CustomerEmail = stripego.String(req.Shipping.Email)
	}
	params.AddMetadata(reconcile.MetadataPendingOrderID, pending.ID)

	session, err := h.stripe.CreateCheckoutSession(c.Request().Context(), params)
	if err != nil {
		slog.Error("failed to create checkout session", "error", err, "pending_checkout_id", pending.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create checkout session")
	}

	if err := h.queries.LinkPendingCheckoutSession(c.Request().Context(), db.LinkPendingCheckoutSessionParams{
		StripeSessionID: sql.NullString{String: session.ID, Valid: true},
		ID:              pending.ID,
	}); err != nil {
		slog.Error("failed to link session to pending checkout", "error", err, "pending_checkout_id", pending.ID)
	}

	return c.JSON(http.StatusOK, createSessionResponse{
		URL:               session.URL,
		SessionID:         session.ID,
		PendingCheckoutID: pending.ID,
	})
}
