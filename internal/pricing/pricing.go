// Package pricing holds the checkout pricing rules: flat per-country
// shipping rates and the wooden-coaster set price table.
package pricing

import (
	"regexp"
	"strings"
)

// Flat shipping rates in cents, keyed by ISO country code. Countries not
// listed here cannot be shipped to.
var ShippingCentsByCountry = map[string]int64{
	"CA": 499,
	"GB": 499,
	"US": 1299,
	"NZ": 1299,
}

// WoodenCoasterSetSizes are the set sizes the shop sells. Anything else
// is treated as a single coaster.
var WoodenCoasterSetSizes = []int64{1, 2, 4, 6, 8, 12, 24, 50, 100}

// WoodenCoasterUnitCents is the price of a single wooden coaster.
const WoodenCoasterUnitCents int64 = 999

var woodenCoasterName = regexp.MustCompile(`(?i)wooden\s+coaster`)

// NormalizeCountry uppercases and trims a country code.
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ShippingCents returns the flat shipping rate for a country, or false if
// the shop does not ship there.
func ShippingCents(country string) (int64, bool) {
	cents, ok := ShippingCentsByCountry[NormalizeCountry(country)]
	return cents, ok
}

// Item is the subset of a cart line item that pricing looks at.
type Item struct {
	Slug           string
	Name           string
	PriceCents     int64
	CoasterSetSize int64
}

// NormalizeItemPriceCents recomputes the price of a line item server-side.
// Client-supplied prices are never trusted for coaster sets: the price is
// always unit price times a validated set size.
func NormalizeItemPriceCents(item Item, overrideCents int64) int64 {
	if overrideCents > 0 {
		return overrideCents
	}
	if item.Slug == "wooden-coasters" || woodenCoasterName.MatchString(item.Name) {
		return WoodenCoasterUnitCents * validSetSize(item.CoasterSetSize)
	}
	return item.PriceCents
}

func validSetSize(size int64) int64 {
	for _, s := range WoodenCoasterSetSizes {
		if s == size {
			return size
		}
	}
	return 1
}
