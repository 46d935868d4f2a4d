package webhook

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripewebhook "github.com/stripe/stripe-go/v80/webhook"
)

const testSecret = "whsec_test_secret"

func signedHeader(t *testing.T, payload []byte, secret string, at time.Time) string {
	t.Helper()
	sig := stripewebhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}

func TestVerify_ValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_123","api_version":"2024-09-30.acacia","type":"checkout.session.completed","data":{"object":{"id":"cs_abc"}}}`)
	header := signedHeader(t, payload, testSecret, time.Now())

	v := NewVerifier(testSecret)
	event, err := v.Verify(payload, header)
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutSessionCompleted, string(event.Type))
	assert.Equal(t, "evt_123", event.ID)
}

func TestVerify_TamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_123","type":"checkout.session.completed"}`)
	header := signedHeader(t, payload, testSecret, time.Now())

	v := NewVerifier(testSecret)
	_, err := v.Verify([]byte(`{"id":"evt_456","type":"checkout.session.completed"}`), header)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_WrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_123"}`)
	header := signedHeader(t, payload, "whsec_other", time.Now())

	v := NewVerifier(testSecret)
	_, err := v.Verify(payload, header)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_MissingSignature(t *testing.T) {
	v := NewVerifier(testSecret)
	_, err := v.Verify([]byte(`{}`), "")
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerify_MissingSecret(t *testing.T) {
	payload := []byte(`{}`)
	header := signedHeader(t, payload, testSecret, time.Now())

	v := NewVerifier("")
	_, err := v.Verify(payload, header)
	assert.ErrorIs(t, err, ErrMissingSecret)
}
