package handlers

import (
	"net/http"
	"testing"

	"github.com/ironleafengravings/storefront/internal/email"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactEmailer struct {
	configured bool
	sent       []*email.ContactData
}

func (f *fakeContactEmailer) Configured() bool { return f.configured }

func (f *fakeContactEmailer) SendContactNotification(data *email.ContactData) error {
	f.sent = append(f.sent, data)
	return nil
}

func TestHandleSubmit_RelaysMessage(t *testing.T) {
	emails := &fakeContactEmailer{configured: true}
	h := NewContactHandler(emails)

	c, rec := NewTestContext(http.MethodPost, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "Can you engrave a family crest?",
	})
	require.NoError(t, h.HandleSubmit(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, emails.sent, 1)
	assert.Equal(t, "jane@example.com", emails.sent[0].Email)
	assert.Equal(t, "Website inquiry", emails.sent[0].Subject)
}

func TestHandleSubmit_RejectsMissingFields(t *testing.T) {
	h := NewContactHandler(&fakeContactEmailer{configured: true})

	c, _ := NewTestContext(http.MethodPost, "/api/contact", map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})
	err := h.HandleSubmit(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestHandleSubmit_RejectsBadEmail(t *testing.T) {
	h := NewContactHandler(&fakeContactEmailer{configured: true})

	c, _ := NewTestContext(http.MethodPost, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "not-an-email",
		"message": "hello",
	})
	err := h.HandleSubmit(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestHandleSubmit_UnavailableWhenUnconfigured(t *testing.T) {
	h := NewContactHandler(&fakeContactEmailer{configured: false})

	c, _ := NewTestContext(http.MethodPost, "/api/contact", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "hello",
	})
	err := h.HandleSubmit(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
}
