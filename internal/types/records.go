package types

import (
	"time"

	"github.com/google/uuid"
)

// Project is a stored construction project.
type Project struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	ProjectType ProjectType `json:"project_type,omitempty"`
	QualityTier QualityTier `json:"quality_tier,omitempty"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Project status constants.
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
)

// Supplier is a stored material supplier or subcontractor.
type Supplier struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	City       string    `json:"city"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	WebsiteURL string    `json:"website_url,omitempty"`
	Rating     float64   `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PurchaseOrderItem is one line of a purchase order.
type PurchaseOrderItem struct {
	Item      string  `json:"item"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// PurchaseOrder is a stored order against a supplier for a project.
type PurchaseOrder struct {
	ID         uuid.UUID           `json:"id"`
	ProjectID  uuid.UUID           `json:"project_id"`
	SupplierID uuid.UUID           `json:"supplier_id"`
	Items      []PurchaseOrderItem `json:"items"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Quote is a stored client-facing quote document for a project.
type Quote struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	TotalLabel string    `json:"total_label"`
	ValidUntil string    `json:"valid_until"`
	Terms      []string  `json:"terms"`
	CreatedAt  time.Time `json:"created_at"`
}

// OutreachMessage is a generated marketing message for a supplier.
type OutreachMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	// GroundedOn names the supplier page the message was tailored from,
	// empty when no website was available.
	GroundedOn string `json:"grounded_on,omitempty"`
}

// ProjectRisk is one entry of a standalone risk analysis.
type ProjectRisk struct {
	Category    string          `json:"category"`
	Severity    WarningSeverity `json:"severity"`
	Description string          `json:"description"`
	Mitigation  string          `json:"mitigation"`
}

// RiskReport is the standalone risk-analysis output for a project.
type RiskReport struct {
	Summary string        `json:"summary"`
	Risks   []ProjectRisk `json:"risks"`
}

// ConceptImages holds the two generated design concept artifacts.
type ConceptImages struct {
	Exterior []byte `json:"-"`
	Interior []byte `json:"-"`
	// MIME types of the generated artifacts, typically image/png.
	ExteriorMIME string `json:"exterior_mime"`
	InteriorMIME string `json:"interior_mime"`
}

// User is an application user. Authentication is out of scope; a hardcoded
// mock user stands in for a real account system.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// MockUser returns the fixed stand-in user attached to created records.
func MockUser() User {
	return User{
		ID:    uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Name:  "Abu Khalid",
		Email: "owner@example.com",
	}
}
