// Package notify fans a committed order out to its notification channels.
//
// Every channel is best-effort: a failed receipt email never blocks the
// staff notification or the ad conversion, and no failure propagates back
// to the webhook response. The order is already durable by the time this
// package runs.
package notify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ironleafengravings/storefront/internal/email"
	"github.com/ironleafengravings/storefront/internal/meta"
	"github.com/ironleafengravings/storefront/internal/reconcile"
	"golang.org/x/sync/errgroup"
)

// Emailer is the slice of the email service the notifier uses.
type Emailer interface {
	Configured() bool
	SendOrderReceipt(data *email.OrderData) error
	SendOrderNotification(data *email.OrderData) error
}

// ConversionReporter sends server-side ad conversion events.
type ConversionReporter interface {
	Configured() bool
	SendPurchase(ctx context.Context, ev *meta.PurchaseEvent) error
}

type Notifier struct {
	emails      Emailer
	conversions ConversionReporter
	timeout     time.Duration
}

func NewNotifier(emails Emailer, conversions ConversionReporter) *Notifier {
	return &Notifier{
		emails:      emails,
		conversions: conversions,
		timeout:     30 * time.Second,
	}
}

// NotifyOrder dispatches all channels for a freshly committed order and
// waits for them to finish. Channel failures are logged, never returned.
func (n *Notifier) NotifyOrder(ctx context.Context, order *reconcile.Result) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	data := emailData(order)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n.sendReceipt(order, data)
		return nil
	})
	g.Go(func() error {
		n.sendInternal(order, data)
		return nil
	})
	g.Go(func() error {
		n.sendConversion(ctx, order)
		return nil
	})

	g.Wait()
}

func (n *Notifier) sendReceipt(order *reconcile.Result, data *email.OrderData) {
	if !n.emails.Configured() {
		slog.Info("skipping receipt email: email service not configured", "order_id", order.OrderID)
		return
	}
	if order.CustomerEmail == "" {
		slog.Warn("skipping receipt email: no customer email on order", "order_id", order.OrderID)
		return
	}
	if err := n.emails.SendOrderReceipt(data); err != nil {
		slog.Error("failed to send receipt email", "error", err, "order_id", order.OrderID)
		return
	}
	slog.Info("receipt email sent", "order_id", order.OrderID)
}

func (n *Notifier) sendInternal(order *reconcile.Result, data *email.OrderData) {
	if !n.emails.Configured() {
		slog.Info("skipping internal notification: email service not configured", "order_id", order.OrderID)
		return
	}
	if err := n.emails.SendOrderNotification(data); err != nil {
		slog.Error("failed to send internal order notification", "error", err, "order_id", order.OrderID)
		return
	}
	slog.Info("internal order notification sent", "order_id", order.OrderID)
}

func (n *Notifier) sendConversion(ctx context.Context, order *reconcile.Result) {
	if !n.conversions.Configured() {
		slog.Info("skipping purchase conversion: conversions client not configured", "order_id", order.OrderID)
		return
	}

	firstName, lastName := splitName(order.CustomerName)
	contentIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		if item.Slug != "" {
			contentIDs = append(contentIDs, item.Slug)
		}
	}

	err := n.conversions.SendPurchase(ctx, &meta.PurchaseEvent{
		OrderID:    order.OrderID,
		Email:      order.CustomerEmail,
		Phone:      order.CustomerPhone,
		FirstName:  firstName,
		LastName:   lastName,
		City:       order.Shipping.City,
		State:      order.Shipping.State,
		PostalCode: order.Shipping.PostalCode,
		Country:    order.Shipping.Country,
		ValueCents: order.AmountCents,
		Currency:   order.Currency,
		ContentIDs: contentIDs,
	})
	if err != nil {
		slog.Error("failed to send purchase conversion", "error", err, "order_id", order.OrderID)
		return
	}
	slog.Info("purchase conversion sent", "order_id", order.OrderID)
}

func emailData(order *reconcile.Result) *email.OrderData {
	data := &email.OrderData{
		OrderID:       order.OrderID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		AmountCents:   order.AmountCents,
		Currency:      order.Currency,
		Shipping: email.Address{
			Name:       order.Shipping.Name,
			Line1:      order.Shipping.Line1,
			Line2:      order.Shipping.Line2,
			City:       order.Shipping.City,
			State:      order.Shipping.State,
			PostalCode: order.Shipping.PostalCode,
			Country:    order.Shipping.Country,
		},
	}
	for _, item := range order.Items {
		var images []string
		if item.ImageURL != "" {
			images = append(images, item.ImageURL)
		}
		data.Items = append(data.Items, email.OrderItem{
			Name:           item.Name,
			Quantity:       item.Quantity,
			AmountCents:    item.AmountCents,
			UploadedImages: images,
		})
	}
	return data
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.Fields(full)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
