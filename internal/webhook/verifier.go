// Package webhook authenticates inbound Stripe event payloads.
package webhook

import (
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v80"
	stripewebhook "github.com/stripe/stripe-go/v80/webhook"
)

var (
	// ErrMissingSecret means no webhook secret is configured. This is an
	// operator error, not a client error.
	ErrMissingSecret = errors.New("webhook secret not configured")

	// ErrMissingSignature means the request carried no Stripe-Signature header.
	ErrMissingSignature = errors.New("missing webhook signature")

	// ErrInvalidSignature means the signature did not match the payload.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Event types the reconciliation pipeline consumes. Everything else is
// acknowledged and ignored.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentSucceeded   = "payment_intent.succeeded"
)

// Verifier checks webhook payloads against the shared endpoint secret.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify authenticates a raw payload against its signature header and
// returns the parsed event. The underlying comparison is timing-safe.
func (v *Verifier) Verify(payload []byte, signatureHeader string) (stripego.Event, error) {
	if v.secret == "" {
		return stripego.Event{}, ErrMissingSecret
	}
	if signatureHeader == "" {
		return stripego.Event{}, ErrMissingSignature
	}

	event, err := stripewebhook.ConstructEvent(payload, signatureHeader, v.secret)
	if err != nil {
		return stripego.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event, nil
}
