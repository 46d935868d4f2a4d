// Package service wires the storefront together and registers its routes.
package service

import (
	"crypto/subtle"

	"github.com/ironleafengravings/storefront/internal/email"
	"github.com/ironleafengravings/storefront/internal/handlers"
	"github.com/ironleafengravings/storefront/internal/meta"
	"github.com/ironleafengravings/storefront/internal/notify"
	"github.com/ironleafengravings/storefront/internal/orderid"
	"github.com/ironleafengravings/storefront/internal/reconcile"
	"github.com/ironleafengravings/storefront/internal/stripe"
	"github.com/ironleafengravings/storefront/internal/webhook"
	"github.com/ironleafengravings/storefront/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Service struct {
	storage *storage.Storage
	config  *Config

	paymentHandler  *handlers.PaymentHandler
	checkoutHandler *handlers.CheckoutHandler
	productHandler  *handlers.ProductHandler
	contactHandler  *handlers.ContactHandler
	adminHandler    *handlers.AdminHandler
}

func New(store *storage.Storage, config *Config) *Service {
	stripeClient := stripe.NewClient(config.Stripe.SecretKey)

	emailService := email.NewService(email.Config{
		Host:       config.Email.SMTPHost,
		Port:       config.Email.SMTPPort,
		Username:   config.Email.SMTPUsername,
		Password:   config.Email.SMTPPassword,
		From:       config.Email.From,
		InternalTo: config.Email.InternalTo,
	})

	metaClient := meta.NewClient(meta.Config{
		PixelID:       config.Meta.PixelID,
		AccessToken:   config.Meta.AccessToken,
		APIVersion:    config.Meta.APIVersion,
		TestEventCode: config.Meta.TestEventCode,
	})

	allocator := orderid.NewAllocator(store.DB(), store.Queries, config.Orders.IDPrefix, config.Orders.IDWidth)
	reconciler := reconcile.NewReconciler(store.DB(), store.Queries, stripeClient, allocator)
	notifier := notify.NewNotifier(emailService, metaClient)
	verifier := webhook.NewVerifier(config.Stripe.WebhookSecret)

	return &Service{
		storage:         store,
		config:          config,
		paymentHandler:  handlers.NewPaymentHandler(verifier, reconciler, notifier, store.Queries),
		checkoutHandler: handlers.NewCheckoutHandler(store.Queries, stripeClient, config.BaseURL, config.Checkout.Currency),
		productHandler:  handlers.NewProductHandler(store.Queries),
		contactHandler:  handlers.NewContactHandler(emailService),
		adminHandler:    handlers.NewAdminHandler(store.Queries, config.BaseURL),
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/products", s.productHandler.HandleList)
	api.GET("/products/:slug", s.productHandler.HandleGet)
	api.POST("/checkout/intent", s.checkoutHandler.HandleCreateIntent)
	api.POST("/checkout/session", s.checkoutHandler.HandleCreateSession)
	api.POST("/stripe/webhook", s.paymentHandler.HandleWebhook)
	api.GET("/orders/by-reference", s.paymentHandler.HandleOrderLookup)
	api.POST("/contact", s.contactHandler.HandleSubmit)

	admin := e.Group("/admin")
	admin.Use(middleware.BasicAuth(func(username, password string, _ echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.Admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.Admin.Password)) == 1
		return userOK && passOK, nil
	}))
	admin.GET("/orders", s.adminHandler.HandleListOrders)
	admin.GET("/orders/:id", s.adminHandler.HandleGetOrder)
	admin.GET("/orders/:id/artwork", s.adminHandler.HandleDownloadArtwork)
	admin.GET("/orders/:id/packing-slip", s.adminHandler.HandlePackingSlip)
}
