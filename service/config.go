package service

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	Stripe struct {
		PublishableKey string
		SecretKey      string
		WebhookSecret  string
	}

	Email struct {
		SMTPHost     string
		SMTPPort     int
		SMTPUsername string
		SMTPPassword string
		From         string
		InternalTo   string
	}

	Meta struct {
		PixelID       string
		AccessToken   string
		APIVersion    string
		TestEventCode string
	}

	Admin struct {
		Username string
		Password string
	}

	Orders struct {
		IDPrefix string
		IDWidth  int
	}

	Checkout struct {
		Currency string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/storefront.db"),
	}

	// Stripe
	config.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	config.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")

	// Email
	config.Email.SMTPHost = getEnv("SMTP_HOST", "")
	if port, err := strconv.Atoi(getEnv("SMTP_PORT", "587")); err == nil {
		config.Email.SMTPPort = port
	} else {
		config.Email.SMTPPort = 587
	}
	config.Email.SMTPUsername = getEnv("SMTP_USERNAME", "")
	config.Email.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	config.Email.From = getEnv("EMAIL_FROM", "orders@ironleafengravings.com")
	config.Email.InternalTo = getEnv("EMAIL_INTERNAL_TO", "")

	// Meta Conversions API
	config.Meta.PixelID = getEnv("META_PIXEL_ID", "")
	config.Meta.AccessToken = getEnv("META_ACCESS_TOKEN", "")
	config.Meta.APIVersion = getEnv("META_API_VERSION", "v21.0")
	config.Meta.TestEventCode = getEnv("META_TEST_EVENT_CODE", "")

	// Admin
	config.Admin.Username = getEnv("ADMIN_USERNAME", "admin")
	config.Admin.Password = getEnv("ADMIN_PASSWORD", "password")

	// Orders
	config.Orders.IDPrefix = getEnv("ORDER_ID_PREFIX", "IL-")
	if width, err := strconv.Atoi(getEnv("ORDER_ID_WIDTH", "4")); err == nil {
		config.Orders.IDWidth = width
	} else {
		config.Orders.IDWidth = 4
	}

	// Checkout
	config.Checkout.Currency = getEnv("CHECKOUT_CURRENCY", "usd")

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
