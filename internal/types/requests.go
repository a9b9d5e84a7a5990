package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateProjectRequest represents the request to create a new project.
type CreateProjectRequest struct {
	Name        string      `json:"name" validate:"required,min=1"`
	Description string      `json:"description" validate:"required,min=1"`
	Location    string      `json:"location" validate:"required,min=1"`
	ProjectType ProjectType `json:"project_type,omitempty"`
	QualityTier QualityTier `json:"quality_tier,omitempty"`
}

// UpdateProjectRequest represents a project update. Zero-valued fields keep
// the stored value.
type UpdateProjectRequest struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	ProjectType ProjectType `json:"project_type,omitempty"`
	QualityTier QualityTier `json:"quality_tier,omitempty"`
	Status      string      `json:"status,omitempty"`
}

// GeneratePlanRequest starts a plan-generation run for a project. The
// blueprint is a data URI and is optional.
type GeneratePlanRequest struct {
	BlueprintDocument string `json:"blueprint_document,omitempty"`
}

// CreateSupplierRequest represents the request to register a supplier.
type CreateSupplierRequest struct {
	Name       string  `json:"name" validate:"required,min=1"`
	Category   string  `json:"category" validate:"required,min=1"`
	City       string  `json:"city,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Email      string  `json:"email,omitempty" validate:"omitempty,email"`
	WebsiteURL string  `json:"website_url,omitempty" validate:"omitempty,url"`
	Rating     float64 `json:"rating,omitempty" validate:"gte=0,lte=5"`
}

// OutreachRequest asks for an outreach message from a supplier about a project.
type OutreachRequest struct {
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
}

// CreateOrderRequest represents the request to create a purchase order.
type CreateOrderRequest struct {
	SupplierID uuid.UUID           `json:"supplier_id" validate:"required"`
	Items      []PurchaseOrderItem `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the CreateProjectRequest using the validator.
func (r *CreateProjectRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validateEnums(r.ProjectType, r.QualityTier)
}

// Validate validates the UpdateProjectRequest using the validator.
func (r *UpdateProjectRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validateEnums(r.ProjectType, r.QualityTier)
}

// Validate validates the CreateSupplierRequest using the validator.
func (r *CreateSupplierRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the OutreachRequest using the validator.
func (r *OutreachRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateOrderRequest using the validator.
func (r *CreateOrderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// validateEnums accepts empty values; a request may omit both and let the
// classifier fill them in later.
func validateEnums(projectType ProjectType, qualityTier QualityTier) error {
	if projectType != "" && !projectType.Valid() {
		return fmt.Errorf("unknown project_type: %q", projectType)
	}
	if qualityTier != "" && !qualityTier.Valid() {
		return fmt.Errorf("unknown quality_tier: %q", qualityTier)
	}
	return nil
}
