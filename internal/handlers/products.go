package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/ironleafengravings/storefront/internal/pricing"
	"github.com/ironleafengravings/storefront/storage/db"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	queries *db.Queries
}

func NewProductHandler(queries *db.Queries) *ProductHandler {
	return &ProductHandler{queries: queries}
}

type productResponse struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	PriceCents  int64    `json:"priceCents"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Badges      []string `json:"badges,omitempty"`
	KeyPoints   []string `json:"keyPoints,omitempty"`
	Included    []string `json:"included,omitempty"`
	SetSizes    []int64  `json:"setSizes,omitempty"`
}

func toProductResponse(p db.Product) productResponse {
	return productResponse{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageUrl,
		Badges:      splitList(p.Badges),
		KeyPoints:   splitList(p.KeyPoints),
		Included:    splitList(p.Included),
		SetSizes:    setSizesFor(p),
	}
}

// HandleList returns the active catalog.
func (h *ProductHandler) HandleList(c echo.Context) error {
	products, err := h.queries.ListActiveProducts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load products")
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

// HandleGet returns a single product by slug.
func (h *ProductHandler) HandleGet(c echo.Context) error {
	product, err := h.queries.GetProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load product")
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

func setSizesFor(p db.Product) []int64 {
	if p.Slug != "wooden-coasters" {
		return nil
	}
	return pricing.WoodenCoasterSetSizes
}

// splitList parses the newline-delimited text columns into display lists.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
