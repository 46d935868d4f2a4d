// Package email sends transactional mail over SMTP.
package email

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Config carries the SMTP settings plus the internal notification recipient.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	InternalTo string
}

type Service struct {
	host       string
	port       int
	username   string
	password   string
	from       string
	internalTo string
}

func NewService(cfg Config) *Service {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return &Service{
		host:       cfg.Host,
		port:       port,
		username:   cfg.Username,
		password:   cfg.Password,
		from:       cfg.From,
		internalTo: cfg.InternalTo,
	}
}

// Configured reports whether outbound mail can be sent at all.
func (s *Service) Configured() bool {
	return s.host != "" && s.password != "" && s.from != ""
}

// InternalRecipient returns the staff notification address, if configured.
func (s *Service) InternalRecipient() string {
	return s.internalTo
}

// Email represents an email message
type Email struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// Send delivers a message via SMTP. HTML is preferred when both bodies are set.
func (s *Service) Send(email *Email) error {
	if !s.Configured() {
		return fmt.Errorf("email service not configured: missing SMTP host, password, or from address")
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", email.To[0]))
	if email.ReplyTo != "" {
		msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", email.ReplyTo))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))

	body := email.Text
	if email.HTML != "" {
		msg.WriteString("MIME-Version: 1.0\r\n")
		msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
		body = email.HTML
	}

	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.from, email.To, msg.Bytes()); err != nil {
		slog.Error("failed to send email", "error", err, "to", email.To)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("email sent", "to", email.To, "subject", email.Subject)
	return nil
}

// SendOrderReceipt sends the customer their order receipt.
func (s *Service) SendOrderReceipt(data *OrderData) error {
	html, err := RenderReceiptHTML(data)
	if err != nil {
		return err
	}

	return s.Send(&Email{
		To:      []string{data.CustomerEmail},
		Subject: fmt.Sprintf("Your Iron Leaf Engravings receipt • %s", data.OrderID),
		Text:    RenderReceiptText(data),
		HTML:    html,
		ReplyTo: s.from,
	})
}

// SendOrderNotification sends the internal "new order" notification.
func (s *Service) SendOrderNotification(data *OrderData) error {
	if s.internalTo == "" {
		return fmt.Errorf("internal notification recipient not configured")
	}

	html, err := RenderNotificationHTML(data)
	if err != nil {
		return err
	}

	return s.Send(&Email{
		To:      []string{s.internalTo},
		Subject: fmt.Sprintf("New order • %s", data.OrderID),
		Text:    RenderNotificationText(data),
		HTML:    html,
		ReplyTo: s.from,
	})
}

// ContactData is a submitted contact-form message.
type ContactData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// SendContactNotification relays a contact-form submission to staff, with
// Reply-To set to the sender so staff can answer directly.
func (s *Service) SendContactNotification(data *ContactData) error {
	if s.internalTo == "" {
		return fmt.Errorf("internal notification recipient not configured")
	}

	text := fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\n\n%s",
		data.Name, data.Email, data.Subject, data.Message)

	return s.Send(&Email{
		To:      []string{s.internalTo},
		Subject: fmt.Sprintf("[Contact] %s", data.Subject),
		Text:    text,
		ReplyTo: data.Email,
	})
}
