package handlers

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/ironleafengravings/storefront/internal/email"
	"github.com/ironleafengravings/storefront/storage/db"
	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
)

type AdminHandler struct {
	queries    *db.Queries
	baseURL    string
	httpClient *http.Client
}

func NewAdminHandler(queries *db.Queries, baseURL string) *AdminHandler {
	return &AdminHandler{
		queries:    queries,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type adminOrderResponse struct {
	ID                    string       `json:"id"`
	CreatedAt             time.Time    `json:"createdAt"`
	CustomerEmail         string       `json:"customerEmail"`
	CustomerName          string       `json:"customerName"`
	CustomerPhone         string       `json:"customerPhone,omitempty"`
	AmountTotalCents      int64        `json:"amountTotalCents"`
	ShippingCents         int64        `json:"shippingCents"`
	Currency              string       `json:"currency"`
	PaymentStatus         string       `json:"paymentStatus"`
	StripeSessionID       string       `json:"stripeSessionId,omitempty"`
	StripePaymentIntentID string       `json:"stripePaymentIntentId,omitempty"`
	Shipping              adminAddress `json:"shipping"`
	Items                 []adminItem  `json:"items,omitempty"`
}

type adminAddress struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type adminItem struct {
	Name             string `json:"name"`
	Quantity         int64  `json:"quantity"`
	PriceCents       int64  `json:"priceCents"`
	ImageURL         string `json:"imageUrl,omitempty"`
	UploadedFileName string `json:"uploadedFileName,omitempty"`
}

func toAdminOrder(order db.Order, items []db.OrderItem) adminOrderResponse {
	resp := adminOrderResponse{
		ID:                    order.ID,
		CreatedAt:             order.CreatedAt,
		CustomerEmail:         order.CustomerEmail,
		CustomerName:          order.CustomerName,
		CustomerPhone:         order.CustomerPhone,
		AmountTotalCents:      order.AmountTotalCents,
		ShippingCents:         order.ShippingCents,
		Currency:              order.Currency,
		PaymentStatus:         order.PaymentStatus,
		StripeSessionID:       order.StripeSessionID.String,
		StripePaymentIntentID: order.StripePaymentIntentID.String,
		Shipping: adminAddress{
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
		resp.Items = append(resp.Items, adminItem{
			Name:             item.Name,
			Quantity:         item.Quantity,
			PriceCents:       item.PriceCents,
			ImageURL:         item.ImageUrl,
			UploadedFileName: item.UploadedFileName,
		})
	}
	return resp
}

// HandleListOrders returns all orders, newest first.
func (h *AdminHandler) HandleListOrders(c echo.Context) error {
	orders, err := h.queries.ListOrders(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load orders")
	}

	out := make([]adminOrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toAdminOrder(order, nil))
	}
	return c.JSON(http.StatusOK, out)
}

// HandleGetOrder returns one order with its items.
func (h *AdminHandler) HandleGetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.queries.GetOrder(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load order")
	}

	items, err := h.queries.ListOrderItems(ctx, order.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load order items")
	}
	return c.JSON(http.StatusOK, toAdminOrder(order, items))
}

// HandleDownloadArtwork proxies a customer's uploaded artwork as an
// attachment download. The optional item query parameter selects a line
// item's artwork instead of the order-level image.
func (h *AdminHandler) HandleDownloadArtwork(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.queries.GetOrder(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load order")
	}

	imageURL := order.ImageUrl
	fileName := order.UploadedFileName

	if itemParam := c.QueryParam("item"); itemParam != "" {
		index, err := strconv.Atoi(itemParam)
		if err != nil || index < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid item index")
		}
		items, err := h.queries.ListOrderItems(ctx, order.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load order items")
		}
		if index >= len(items) {
			return echo.NewHTTPError(http.StatusNotFound, "No such order item")
		}
		imageURL = items[index].ImageUrl
		fileName = items[index].UploadedFileName
	}

	if imageURL == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Order has no artwork")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "Invalid artwork URL")
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		slog.Error("failed to fetch artwork", "error", err, "order_id", order.ID)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to fetch artwork")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("Artwork host returned %d", resp.StatusCode))
	}

	if fileName == "" {
		fileName = path.Base(imageURL)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Stream(http.StatusOK, contentType, resp.Body)
}

// HandlePackingSlip renders a printable PDF packing slip with a QR code
// back to the order's admin page.
func (h *AdminHandler) HandlePackingSlip(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.queries.GetOrder(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load order")
	}

	items, err := h.queries.ListOrderItems(ctx, order.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load order items")
	}

	pdfBytes, err := h.renderPackingSlip(order, items)
	if err != nil {
		slog.Error("failed to render packing slip", "error", err, "order_id", order.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render packing slip")
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", order.ID+"-packing-slip.pdf"))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *AdminHandler) renderPackingSlip(order db.Order, items []db.OrderItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(120, 10, "Iron Leaf Engravings")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, "Order "+order.ID, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	qrURL := h.baseURL + "/admin/orders/" + order.ID
	qrPNG, err := qrcode.Encode(qrURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	pdf.RegisterImageOptionsReader("order-qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("order-qr", 170, 10, 28, 28, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Ship to")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range shippingLines(order) {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 8, "Item", "B", 0, "", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.CellFormat(110, 8, item.Name, "", 0, "", false, 0, "")
		pdf.CellFormat(20, 8, strconv.FormatInt(item.Quantity, 10), "", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, email.FormatCents(item.PriceCents, order.Currency), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, email.FormatCents(order.AmountTotalCents, order.Currency), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func shippingLines(order db.Order) []string {
	var lines []string
	for _, l := range []string{order.ShippingName, order.ShippingLine1, order.ShippingLine2} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	locality := order.ShippingCity
	if order.ShippingState != "" || order.ShippingPostalCode != "" {
		locality = fmt.Sprintf("%s, %s %s", order.ShippingCity, order.ShippingState, order.ShippingPostalCode)
	}
	if locality != "" {
		lines = append(lines, locality)
	}
	if order.ShippingCountry != "" {
		lines = append(lines, order.ShippingCountry)
	}
	if len(lines) == 0 {
		lines = append(lines, "No shipping address on file")
	}
	return lines
}
