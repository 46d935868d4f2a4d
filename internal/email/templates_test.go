package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$24.97", FormatCents(2497, "usd"))
	assert.Equal(t, "$0.05", FormatCents(5, "usd"))
	assert.Equal(t, "£4.99", FormatCents(499, "gbp"))
	assert.Equal(t, "NZ$12.99", FormatCents(1299, "nzd"))
}

func sampleOrder() *OrderData {
	return &OrderData{
		OrderID:       "IL-0005",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		AmountCents:   3495,
		Currency:      "usd",
		Items: []OrderItem{
			{Name: "Wooden Coaster Set of 2", Quantity: 1, AmountCents: 1998, UploadedImages: []string{"https://cdn.example.com/art.png"}},
			{Name: "Slate Coaster", Quantity: 1, AmountCents: 1497},
		},
		Shipping: Address{
			Name:       "Jane Doe",
			Line1:      "123 Maple St",
			City:       "Portland",
			State:      "OR",
			PostalCode: "97201",
			Country:    "US",
		},
	}
}

func TestRenderReceiptHTML(t *testing.T) {
	html, err := RenderReceiptHTML(sampleOrder())
	require.NoError(t, err)
	assert.Contains(t, html, "IL-0005")
	assert.Contains(t, html, "Wooden Coaster Set of 2")
	assert.Contains(t, html, "$34.95")
	assert.Contains(t, html, "123 Maple St")
}

func TestRenderNotificationHTML(t *testing.T) {
	html, err := RenderNotificationHTML(sampleOrder())
	require.NoError(t, err)
	assert.Contains(t, html, "New order IL-0005")
	assert.Contains(t, html, "jane@example.com")
	assert.Contains(t, html, "https://cdn.example.com/art.png")
}

func TestAddressLines(t *testing.T) {
	a := Address{Name: "Jane", Line1: "1 Elm", City: "Leeds", PostalCode: "LS1", Country: "GB"}
	assert.Equal(t, []string{"Jane", "1 Elm", "Leeds, LS1", "GB"}, a.Lines())
	assert.True(t, Address{}.Empty())
}
