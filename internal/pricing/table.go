// Package pricing resolves market unit prices for construction materials
// and labor, keyed by Saudi city and quality tier. Resolution is a pure
// lookup with a default fallback and has no error path.
package pricing

import "github.com/haitham/binaa-planner/internal/types"

// materialPrice is either a flat price or a per-tier price map.
// Quality-keyed entries must carry values for all three tiers; this is a
// data-authoring invariant, not a runtime check.
type materialPrice struct {
	flat    float64
	byTier  map[types.QualityTier]float64
	isFixed bool
}

func fixed(v float64) materialPrice {
	return materialPrice{flat: v, isFixed: true}
}

func tiered(standard, premium, luxury float64) materialPrice {
	return materialPrice{byTier: map[types.QualityTier]float64{
		types.TierStandard: standard,
		types.TierPremium:  premium,
		types.TierLuxury:   luxury,
	}}
}

// cityEntry is one row of the market price table.
type cityEntry struct {
	materials map[string]materialPrice
	laborRate float64
	currency  string
}

// defaultKey is the fallback row used for unrecognized locations.
const defaultKey = "default"

// marketTable holds per-city unit prices in SAR. Cement, steel and concrete
// prices track national averages; finishing materials and labor vary by city.
var marketTable = map[string]cityEntry{
	"riyadh": {
		materials: map[string]materialPrice{
			"cement_bag_50kg":     fixed(16),
			"steel_rebar_ton":     fixed(2850),
			"ready_mix_concrete":  fixed(260),
			"sand_m3":             fixed(55),
			"concrete_block":      fixed(3.5),
			"finishing_materials": tiered(450, 750, 1200),
			"electrical_point":    tiered(95, 130, 190),
			"plumbing_point":      tiered(110, 150, 220),
		},
		laborRate: 55,
		currency:  "SAR",
	},
	"jeddah": {
		materials: map[string]materialPrice{
			"cement_bag_50kg":     fixed(17),
			"steel_rebar_ton":     fixed(2900),
			"ready_mix_concrete":  fixed(270),
			"sand_m3":             fixed(60),
			"concrete_block":      fixed(3.8),
			"finishing_materials": tiered(470, 780, 1250),
			"electrical_point":    tiered(100, 135, 200),
			"plumbing_point":      tiered(115, 155, 230),
		},
		laborRate: 58,
		currency:  "SAR",
	},
	"dammam": {
		materials: map[string]materialPrice{
			"cement_bag_50kg":     fixed(15.5),
			"steel_rebar_ton":     fixed(2800),
			"ready_mix_concrete":  fixed(255),
			"sand_m3":             fixed(50),
			"concrete_block":      fixed(3.4),
			"finishing_materials": tiered(440, 730, 1150),
			"electrical_point":    tiered(90, 125, 185),
			"plumbing_point":      tiered(105, 145, 215),
		},
		laborRate: 52,
		currency:  "SAR",
	},
	"mecca": {
		materials: map[string]materialPrice{
			"cement_bag_50kg":     fixed(17.5),
			"steel_rebar_ton":     fixed(2950),
			"ready_mix_concrete":  fixed(275),
			"sand_m3":             fixed(62),
			"concrete_block":      fixed(3.9),
			"finishing_materials": tiered(480, 800, 1280),
			"electrical_point":    tiered(105, 140, 205),
			"plumbing_point":      tiered(120, 160, 235),
		},
		laborRate: 60,
		currency:  "SAR",
	},
	"medina": {
		materials: map[string]materialPrice{
			"cement_bag_50kg":     fixed(17),
			"steel_rebar_ton":     fixed(2880),
			"ready_mix_concrete":  fixed(265),
			"sand_m3":             fixed(58),
			"concrete_block":      fixed(3.7),
			"finishing_materials": tiered(460, 770, 1230),
			"electrical_point":    tiered(98, 132, 195),
			"plumbing_point":      tiered(112, 150, 225),
		},
		laborRate: 56,
		currency:  "SAR",
	},
	defaultKey: {
		materials: map[string]materialPrice{
			"cement_bag_50kg":     fixed(16.5),
			"steel_rebar_ton":     fixed(2875),
			"ready_mix_concrete":  fixed(265),
			"sand_m3":             fixed(57),
			"concrete_block":      fixed(3.6),
			"finishing_materials": tiered(460, 760, 1220),
			"electrical_point":    tiered(97, 132, 195),
			"plumbing_point":      tiered(112, 150, 222),
		},
		laborRate: 55,
		currency:  "SAR",
	},
}
