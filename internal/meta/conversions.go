// Package meta reports server-side ad conversion events to the Meta
// Conversions API.
package meta

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultEndpoint = "https://graph.facebook.com"

type Config struct {
	PixelID       string
	AccessToken   string
	APIVersion    string
	TestEventCode string
}

type Client struct {
	pixelID       string
	accessToken   string
	apiVersion    string
	testEventCode string
	endpoint      string
	httpClient    *http.Client
}

func NewClient(cfg Config) *Client {
	version := cfg.APIVersion
	if version == "" {
		version = "v21.0"
	}
	return &Client{
		pixelID:       cfg.PixelID,
		accessToken:   cfg.AccessToken,
		apiVersion:    version,
		testEventCode: cfg.TestEventCode,
		endpoint:      defaultEndpoint,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether conversion events can be sent.
func (c *Client) Configured() bool {
	return c.pixelID != "" && c.accessToken != ""
}

// PurchaseEvent carries the customer match data and order value for a
// server-side Purchase conversion. All personal fields are hashed before
// leaving the process.
type PurchaseEvent struct {
	OrderID     string
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	City        string
	State       string
	PostalCode  string
	Country     string
	ValueCents  int64
	Currency    string
	ContentIDs  []string
	EventTime   time.Time
	ClientIP    string
	ClientAgent string
}

type userData struct {
	Email           []string `json:"em,omitempty"`
	Phone           []string `json:"ph,omitempty"`
	FirstName       []string `json:"fn,omitempty"`
	LastName        []string `json:"ln,omitempty"`
	City            []string `json:"ct,omitempty"`
	State           []string `json:"st,omitempty"`
	Zip             []string `json:"zp,omitempty"`
	Country         []string `json:"country,omitempty"`
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
}

type customData struct {
	Currency   string   `json:"currency"`
	Value      float64  `json:"value"`
	OrderID    string   `json:"order_id,omitempty"`
	ContentIDs []string `json:"content_ids,omitempty"`
}

type event struct {
	EventName    string     `json:"event_name"`
	EventTime    int64      `json:"event_time"`
	EventID      string     `json:"event_id"`
	ActionSource string     `json:"action_source"`
	UserData     userData   `json:"user_data"`
	CustomData   customData `json:"custom_data"`
}

type payload struct {
	Data          []event `json:"data"`
	TestEventCode string  `json:"test_event_code,omitempty"`
}

// SendPurchase reports a Purchase event. The event id is the order id so
// Meta deduplicates retried webhook deliveries on its side too.
func (c *Client) SendPurchase(ctx context.Context, ev *PurchaseEvent) error {
	if !c.Configured() {
		return fmt.Errorf("meta conversions client not configured")
	}

	eventID := ev.OrderID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	eventTime := ev.EventTime
	if eventTime.IsZero() {
		eventTime = time.Now()
	}

	body := payload{
		Data: []event{{
			EventName:    "Purchase",
			EventTime:    eventTime.Unix(),
			EventID:      eventID,
			ActionSource: "website",
			UserData: userData{
				Email:           hashIfPresent(normalizeEmail(ev.Email)),
				Phone:           hashIfPresent(normalizePhone(ev.Phone)),
				FirstName:       hashIfPresent(normalizeLower(ev.FirstName)),
				LastName:        hashIfPresent(normalizeLower(ev.LastName)),
				City:            hashIfPresent(normalizeCity(ev.City)),
				State:           hashIfPresent(normalizeLower(ev.State)),
				Zip:             hashIfPresent(normalizeZip(ev.PostalCode)),
				Country:         hashIfPresent(normalizeLower(ev.Country)),
				ClientIPAddress: ev.ClientIP,
				ClientUserAgent: ev.ClientAgent,
			},
			CustomData: customData{
				Currency:   strings.ToUpper(ev.Currency),
				Value:      float64(ev.ValueCents) / 100,
				OrderID:    ev.OrderID,
				ContentIDs: ev.ContentIDs,
			},
		}},
		TestEventCode: c.testEventCode,
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode conversion event: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/events?access_token=%s", c.endpoint, c.apiVersion, c.pixelID, c.accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build conversion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send conversion event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("conversion event rejected: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	slog.Info("sent purchase conversion", "order_id", ev.OrderID, "event_id", eventID)
	return nil
}

// hashIfPresent SHA-256 hashes a normalized value, or returns nil for an
// empty one so the field is omitted entirely.
func hashIfPresent(normalized string) []string {
	if normalized == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(normalized))
	return []string{hex.EncodeToString(sum[:])}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var nonDigits = regexp.MustCompile(`\D`)

func normalizePhone(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

func normalizeLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeCity(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

func normalizeZip(s string) string {
	z := strings.TrimSpace(s)
	if len(z) > 5 {
		z = z[:5]
	}
	return strings.ToLower(z)
}
