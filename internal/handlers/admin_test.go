package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ironleafengravings/storefront/storage/db"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, queries *db.Queries, id, imageURL string) db.Order {
	t.Helper()

	order, err := queries.CreateOrder(context.Background(), db.CreateOrderParams{
		ID:                 id,
		StripeSessionID:    sql.NullString{String: "cs_" + id, Valid: true},
		CustomerEmail:      "jane@example.com",
		CustomerName:       "Jane Doe",
		ShippingName:       "Jane Doe",
		ShippingLine1:      "1 Elm St",
		ShippingCity:       "Portland",
		ShippingState:      "OR",
		ShippingPostalCode: "97201",
		ShippingCountry:    "US",
		AmountTotalCents:   3295,
		ShippingCents:      1299,
		Currency:           "usd",
		PaymentStatus:      "paid",
		UploadedFileName:   "crest.png",
		ImageUrl:           imageURL,
	})
	require.NoError(t, err)

	_, err = queries.CreateOrderItem(context.Background(), db.CreateOrderItemParams{
		ID:         id + "-item-1",
		OrderID:    id,
		Name:       "Wooden Coaster Set of 2",
		Quantity:   1,
		PriceCents: 1996,
		ImageUrl:   imageURL,
	})
	require.NoError(t, err)
	return order
}

func TestHandleListOrders(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	seedOrder(t, queries, "IL-0001", "")
	seedOrder(t, queries, "IL-0002", "")

	h := NewAdminHandler(queries, "https://shop.example.com")
	c, rec := NewTestContext(http.MethodGet, "/admin/orders", nil)
	require.NoError(t, h.HandleListOrders(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var orders []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)
}

func TestHandleGetOrder(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	seedOrder(t, queries, "IL-0001", "")
	h := NewAdminHandler(queries, "https://shop.example.com")

	c, rec := NewTestContext(http.MethodGet, "/admin/orders/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("IL-0001")
	require.NoError(t, h.HandleGetOrder(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var order map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "IL-0001", order["id"])
	assert.Len(t, order["items"], 1)

	c, _ = NewTestContext(http.MethodGet, "/admin/orders/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("IL-9999")
	err := h.HandleGetOrder(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestHandleDownloadArtwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	_, queries, cleanup := NewTestDB()
	defer cleanup()

	seedOrder(t, queries, "IL-0001", server.URL+"/art.png")
	h := NewAdminHandler(queries, "https://shop.example.com")

	c, rec := NewTestContext(http.MethodGet, "/admin/orders/:id/artwork", nil)
	c.SetParamNames("id")
	c.SetParamValues("IL-0001")
	require.NoError(t, h.HandleDownloadArtwork(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "crest.png")
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestHandleDownloadArtwork_NoArtwork(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	seedOrder(t, queries, "IL-0001", "")
	h := NewAdminHandler(queries, "https://shop.example.com")

	c, _ := NewTestContext(http.MethodGet, "/admin/orders/:id/artwork?item=5", nil)
	c.SetParamNames("id")
	c.SetParamValues("IL-0001")
	err := h.HandleDownloadArtwork(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestHandlePackingSlip(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	seedOrder(t, queries, "IL-0001", "")
	h := NewAdminHandler(queries, "https://shop.example.com")

	c, rec := NewTestContext(http.MethodGet, "/admin/orders/:id/packing-slip", nil)
	c.SetParamNames("id")
	c.SetParamValues("IL-0001")
	require.NoError(t, h.HandlePackingSlip(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "IL-0001-packing-slip.pdf")
	// PDF magic bytes.
	assert.True(t, len(rec.Body.Bytes()) > 4)
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}
