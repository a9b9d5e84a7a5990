package pricing

import (
	"strings"

	"github.com/haitham/binaa-planner/internal/types"
)

// Resolve returns the market price sheet for a location and quality tier.
// Locations are matched on the city name before the first comma,
// case-insensitively; unknown cities resolve to the default sheet. Resolve
// always returns a usable sheet and never fails.
func Resolve(locationText string, tier types.QualityTier) types.MarketPriceSheet {
	entry, ok := marketTable[normalizeLocation(locationText)]
	if !ok {
		entry = marketTable[defaultKey]
	}

	prices := make(map[string]float64, len(entry.materials))
	for name, p := range entry.materials {
		if p.isFixed {
			prices[name] = p.flat
		} else {
			prices[name] = p.byTier[tier]
		}
	}

	return types.MarketPriceSheet{
		MaterialUnitPrices: prices,
		LaborRatePerHour:   entry.laborRate,
		CurrencyCode:       entry.currency,
	}
}

// KnownCities returns the city keys present in the market table,
// excluding the default fallback row.
func KnownCities() []string {
	cities := make([]string, 0, len(marketTable)-1)
	for city := range marketTable {
		if city != defaultKey {
			cities = append(cities, city)
		}
	}
	return cities
}

// normalizeLocation reduces a free-text location to a lookup key:
// the substring before the first comma, trimmed and lowercased.
func normalizeLocation(locationText string) string {
	city := locationText
	if idx := strings.Index(city, ","); idx >= 0 {
		city = city[:idx]
	}
	return strings.ToLower(strings.TrimSpace(city))
}
