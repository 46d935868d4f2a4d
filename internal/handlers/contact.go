package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ironleafengravings/storefront/internal/email"
	"github.com/labstack/echo/v4"
)

// ContactEmailer is the slice of the email service the contact form uses.
type ContactEmailer interface {
	Configured() bool
	SendContactNotification(data *email.ContactData) error
}

type ContactHandler struct {
	emails ContactEmailer
}

func NewContactHandler(emails ContactEmailer) *ContactHandler {
	return &ContactHandler{emails: emails}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// HandleSubmit relays a contact-form submission to the shop inbox.
func (h *ContactHandler) HandleSubmit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, email, and message are required")
	}
	if !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid email address")
	}
	if req.Subject == "" {
		req.Subject = "Website inquiry"
	}

	if !h.emails.Configured() {
		slog.Error("contact form submitted but email service not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Contact form is temporarily unavailable")
	}

	if err := h.emails.SendContactNotification(&email.ContactData{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		slog.Error("failed to relay contact message", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send message")
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
