package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartRequest(country string) *checkoutRequest {
	return &checkoutRequest{
		Items: []checkoutItemRequest{
			{
				Slug:           "wooden-coasters",
				Name:           "Wooden Coaster",
				Quantity:       1,
				PriceCents:     1, // client-sent price must be ignored
				CoasterSetSize: 4,
				ImageURL:       "https://cdn.example.com/art.png",
			},
			{
				Slug:       "slate-coaster",
				Name:       "Slate Coaster",
				Quantity:   2,
				PriceCents: 1497,
			},
		},
		Shipping: checkoutShippingRequest{
			Name:       "Jane Doe",
			Email:      "jane@example.com",
			Line1:      "1 Elm St",
			City:       "Portland",
			State:      "OR",
			PostalCode: "97201",
			Country:    country,
		},
	}
}

func TestPriceCheckout_RecomputesServerSide(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewCheckoutHandler(queries, nil, "https://shop.example.com", "usd")

	c, _ := NewTestContext(http.MethodPost, "/api/checkout/session", nil)
	pending, total, err := h.priceCheckout(c, cartRequest("us"), "hosted_checkout")
	require.NoError(t, err)

	// Set of 4 coasters at 999 each, plus 2 slate at 1497, plus US shipping.
	wantSubtotal := int64(999*4 + 1497*2)
	assert.Equal(t, wantSubtotal, pending.SubtotalCents)
	assert.Equal(t, int64(1299), pending.ShippingCents)
	assert.Equal(t, wantSubtotal+1299, total)
	assert.Equal(t, "US", pending.ShippingCountry)
	assert.Equal(t, "pending", pending.Status)

	items, err := queries.ListPendingCheckoutItems(context.Background(), pending.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		if item.Slug == "wooden-coasters" {
			assert.Equal(t, int64(999*4), item.PriceCents)
		}
	}
}

func TestPriceCheckout_CheaperShippingForUKAndCanada(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewCheckoutHandler(queries, nil, "https://shop.example.com", "usd")

	c, _ := NewTestContext(http.MethodPost, "/api/checkout/session", nil)
	pending, _, err := h.priceCheckout(c, cartRequest("gb"), "hosted_checkout")
	require.NoError(t, err)
	assert.Equal(t, int64(499), pending.ShippingCents)
}

func TestPriceCheckout_RejectsUnshippableCountry(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewCheckoutHandler(queries, nil, "https://shop.example.com", "usd")

	c, _ := NewTestContext(http.MethodPost, "/api/checkout/session", nil)
	_, _, err := h.priceCheckout(c, cartRequest("DE"), "hosted_checkout")

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPriceCheckout_RejectsEmptyCart(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewCheckoutHandler(queries, nil, "https://shop.example.com", "usd")

	c, _ := NewTestContext(http.MethodPost, "/api/checkout/session", nil)
	req := cartRequest("US")
	req.Items = nil
	_, _, err := h.priceCheckout(c, req, "hosted_checkout")

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPriceCheckout_RejectsNonPositiveQuantity(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewCheckoutHandler(queries, nil, "https://shop.example.com", "usd")

	c, _ := NewTestContext(http.MethodPost, "/api/checkout/session", nil)
	req := cartRequest("US")
	req.Items[0].Quantity = 0
	_, _, err := h.priceCheckout(c, req, "hosted_checkout")

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
