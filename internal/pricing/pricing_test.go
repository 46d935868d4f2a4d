package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingCents(t *testing.T) {
	testCases := []struct {
		country  string
		expected int64
		ok       bool
	}{
		{"CA", 499, true},
		{"ca", 499, true},
		{" gb ", 499, true},
		{"US", 1299, true},
		{"NZ", 1299, true},
		{"DE", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		cents, ok := ShippingCents(tc.country)
		assert.Equal(t, tc.ok, ok, "country %q", tc.country)
		assert.Equal(t, tc.expected, cents, "country %q", tc.country)
	}
}

func TestNormalizeItemPriceCents_CoasterSets(t *testing.T) {
	// Set price is always unit price * set size, regardless of what the
	// client claimed the item costs.
	item := Item{Slug: "wooden-coasters", Name: "Wooden Coaster Set", PriceCents: 1, CoasterSetSize: 4}
	assert.Equal(t, int64(3996), NormalizeItemPriceCents(item, 0))

	// Invalid set sizes fall back to a single coaster.
	item.CoasterSetSize = 7
	assert.Equal(t, int64(999), NormalizeItemPriceCents(item, 0))

	// Name matching is case-insensitive and applies without the slug.
	byName := Item{Name: "wooden  coaster (custom)", PriceCents: 1, CoasterSetSize: 2}
	assert.Equal(t, int64(1998), NormalizeItemPriceCents(byName, 0))
}

func TestNormalizeItemPriceCents_NonCoasterKeepsPrice(t *testing.T) {
	item := Item{Slug: "ceramic-coasters", Name: "Ceramic Tile", PriceCents: 1499}
	assert.Equal(t, int64(1499), NormalizeItemPriceCents(item, 0))
}

func TestNormalizeItemPriceCents_Override(t *testing.T) {
	item := Item{Slug: "wooden-coasters", Name: "Wooden Coaster", PriceCents: 999, CoasterSetSize: 4}
	assert.Equal(t, int64(100), NormalizeItemPriceCents(item, 100))
}
