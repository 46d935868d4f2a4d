// Seeds the product catalog, plus optional fake pending checkouts and
// orders for local development (SEED_FAKE_DATA=1).
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/ironleafengravings/storefront/internal/pricing"
	"github.com/ironleafengravings/storefront/storage"
	"github.com/ironleafengravings/storefront/storage/db"
)

const numFakeOrders = 15

type catalogProduct struct {
	Slug        string
	Title       string
	Description string
	PriceCents  int64
	Badges      []string
	KeyPoints   []string
	Included    []string
}

var catalog = []catalogProduct{
	{
		Slug:        "wooden-coasters",
		Title:       "Custom Engraved Wooden Coasters",
		Description: "Hardwood coasters laser engraved with your photo, logo, or design.",
		PriceCents:  pricing.WoodenCoasterUnitCents,
		Badges:      []string{"Bestseller", "Handmade"},
		KeyPoints: []string{
			"Solid hardwood, 4 inch rounds",
			"Your artwork engraved edge to edge",
			"Food-safe natural finish",
		},
		Included: []string{"Engraved coasters in your chosen set size", "Gift-ready packaging"},
	},
	{
		Slug:        "slate-coaster",
		Title:       "Engraved Slate Coaster",
		Description: "Natural slate coaster with laser engraved artwork and padded feet.",
		PriceCents:  1497,
		Badges:      []string{"Handmade"},
		KeyPoints:   []string{"Natural cut slate", "Non-slip padded feet"},
		Included:    []string{"One engraved slate coaster"},
	},
	{
		Slug:        "coaster-display-stand",
		Title:       "Walnut Coaster Display Stand",
		Description: "A walnut stand that keeps your coaster set on show.",
		PriceCents:  899,
		KeyPoints:   []string{"Solid walnut", "Fits all our coaster sizes"},
		Included:    []string{"One display stand"},
	},
}

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/storefront.db"
	}

	store, err := storage.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	fmt.Println("Seeding product catalog...")
	seedCatalog(ctx, store.Queries)

	if os.Getenv("SEED_FAKE_DATA") == "1" {
		fmt.Println("Seeding fake orders...")
		seedFakeOrders(ctx, store.Queries)
	}

	fmt.Println("Done.")
}

func seedCatalog(ctx context.Context, queries *db.Queries) {
	for _, p := range catalog {
		if _, err := queries.GetProduct(ctx, p.Slug); err == nil {
			fmt.Printf("  ~ %s (exists)\n", p.Slug)
			continue
		}

		_, err := queries.CreateProduct(ctx, db.CreateProductParams{
			Slug:        p.Slug,
			Title:       p.Title,
			Description: p.Description,
			PriceCents:  p.PriceCents,
			Badges:      strings.Join(p.Badges, "\n"),
			KeyPoints:   strings.Join(p.KeyPoints, "\n"),
			Included:    strings.Join(p.Included, "\n"),
			Active:      1,
		})
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.Slug, err)
		}
		fmt.Printf("  + %s\n", p.Slug)
	}
}

func seedFakeOrders(ctx context.Context, queries *db.Queries) {
	for i := 1; i <= numFakeOrders; i++ {
		orderID := fmt.Sprintf("IL-%04d", i)
		if _, err := queries.GetOrder(ctx, orderID); err == nil {
			continue
		}

		person := gofakeit.Person()
		addr := gofakeit.Address()
		setSize := pricing.WoodenCoasterSetSizes[gofakeit.Number(0, len(pricing.WoodenCoasterSetSizes)-1)]
		subtotal := pricing.WoodenCoasterUnitCents * setSize
		shipping := int64(1299)
		reference := "cs_seed_" + uuid.NewString()

		if err := queries.CreateOrderReference(ctx, db.CreateOrderReferenceParams{
			PaymentReference: reference,
			OrderID:          orderID,
		}); err != nil {
			log.Fatalf("Failed to seed order reference: %v", err)
		}

		order, err := queries.CreateOrder(ctx, db.CreateOrderParams{
			ID:                 orderID,
			StripeSessionID:    sql.NullString{String: reference, Valid: true},
			CustomerEmail:      gofakeit.Email(),
			CustomerName:       person.FirstName + " " + person.LastName,
			CustomerPhone:      gofakeit.Phone(),
			ShippingName:       person.FirstName + " " + person.LastName,
			ShippingLine1:      addr.Street,
			ShippingCity:       addr.City,
			ShippingState:      addr.State,
			ShippingPostalCode: addr.Zip,
			ShippingCountry:    "US",
			AmountTotalCents:   subtotal + shipping,
			ShippingCents:      shipping,
			Currency:           "usd",
			PaymentStatus:      "paid",
			ProductSlug:        "wooden-coasters",
		})
		if err != nil {
			log.Fatalf("Failed to seed order: %v", err)
		}

		if _, err := queries.CreateOrderItem(ctx, db.CreateOrderItemParams{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			Name:       fmt.Sprintf("Wooden Coaster Set of %d", setSize),
			Quantity:   1,
			PriceCents: subtotal,
		}); err != nil {
			log.Fatalf("Failed to seed order item: %v", err)
		}
	}

	// Seed the counter past the fake orders so live allocations continue
	// after them.
	if err := queries.InitOrderCounter(ctx); err != nil {
		log.Fatalf("Failed to init order counter: %v", err)
	}
	counter, err := queries.GetOrderCounter(ctx)
	if err != nil {
		log.Fatalf("Failed to read order counter: %v", err)
	}
	if counter.NextSequence <= numFakeOrders {
		if err := queries.SetOrderCounter(ctx, numFakeOrders+1); err != nil {
			log.Fatalf("Failed to advance order counter: %v", err)
		}
	}
}
