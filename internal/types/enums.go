// Package types defines the shared domain records for the construction
// planning pipeline and the surrounding application.
package types

// QualityTier represents the finish quality level of a project.
// It directly affects material unit pricing.
type QualityTier string

// Quality tier constants. The closed set is part of the classifier contract.
const (
	TierStandard QualityTier = "standard"
	TierPremium  QualityTier = "premium"
	TierLuxury   QualityTier = "luxury"
)

// QualityTiers lists all valid tiers in pricing order.
var QualityTiers = []QualityTier{TierStandard, TierPremium, TierLuxury}

// Valid reports whether the tier is a member of the closed set.
func (q QualityTier) Valid() bool {
	switch q {
	case TierStandard, TierPremium, TierLuxury:
		return true
	}
	return false
}

// ProjectType categorizes a construction project. The classifier must
// choose exactly one of these seven values.
type ProjectType string

// Project type constants.
const (
	TypeVilla               ProjectType = "residential_villa"
	TypeResidentialBuilding ProjectType = "residential_building"
	TypeCommercialBuilding  ProjectType = "commercial_building"
	TypeMosque              ProjectType = "mosque"
	TypeSchool              ProjectType = "school"
	TypeHospital            ProjectType = "hospital"
	TypeWarehouse           ProjectType = "warehouse"
)

// ProjectTypes lists the closed set of project categories.
var ProjectTypes = []ProjectType{
	TypeVilla,
	TypeResidentialBuilding,
	TypeCommercialBuilding,
	TypeMosque,
	TypeSchool,
	TypeHospital,
	TypeWarehouse,
}

// Valid reports whether the project type is a member of the closed set.
func (p ProjectType) Valid() bool {
	for _, t := range ProjectTypes {
		if p == t {
			return true
		}
	}
	return false
}

// WarningSeverity grades a blueprint warning.
type WarningSeverity string

// Warning severity constants.
const (
	SeverityHigh   WarningSeverity = "High"
	SeverityMedium WarningSeverity = "Medium"
	SeverityLow    WarningSeverity = "Low"
)

// Valid reports whether the severity is a member of the closed set.
func (s WarningSeverity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// WarningCategory classifies a blueprint warning.
type WarningCategory string

// Warning category constants.
const (
	CategoryStructural    WarningCategory = "structural"
	CategoryArchitectural WarningCategory = "architectural"
	CategoryElectrical    WarningCategory = "electrical"
	CategoryPlumbing      WarningCategory = "plumbing"
	CategorySafety        WarningCategory = "safety"
	CategoryCompliance    WarningCategory = "compliance"
)

// WarningCategories lists the closed set of warning categories.
var WarningCategories = []WarningCategory{
	CategoryStructural,
	CategoryArchitectural,
	CategoryElectrical,
	CategoryPlumbing,
	CategorySafety,
	CategoryCompliance,
}

// Valid reports whether the category is a member of the closed set.
func (c WarningCategory) Valid() bool {
	for _, v := range WarningCategories {
		if c == v {
			return true
		}
	}
	return false
}
