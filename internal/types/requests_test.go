package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateProjectRequest_Validate(t *testing.T) {
	req := CreateProjectRequest{
		Name:        "Villa Narjis",
		Description: "Luxury two-storey villa",
		Location:    "Riyadh, KSA",
	}
	assert.NoError(t, req.Validate())
}

func TestCreateProjectRequest_MissingFields(t *testing.T) {
	req := CreateProjectRequest{Name: "Villa Narjis"}
	assert.Error(t, req.Validate())
}

func TestCreateProjectRequest_BadEnum(t *testing.T) {
	req := CreateProjectRequest{
		Name:        "Villa Narjis",
		Description: "d",
		Location:    "Riyadh",
		ProjectType: ProjectType("castle"),
	}
	assert.Error(t, req.Validate())
}

func TestUpdateProjectRequest_EmptyIsValid(t *testing.T) {
	req := UpdateProjectRequest{}
	assert.NoError(t, req.Validate())
}

func TestUpdateProjectRequest_KnownEnums(t *testing.T) {
	req := UpdateProjectRequest{ProjectType: TypeMosque, QualityTier: TierPremium}
	assert.NoError(t, req.Validate())
}

func TestCreateSupplierRequest_Validate(t *testing.T) {
	req := CreateSupplierRequest{
		Name:       "Al Noor Building Materials",
		Category:   "ready-mix concrete",
		City:       "Riyadh",
		Email:      "sales@alnoor.example.sa",
		WebsiteURL: "https://alnoor.example.sa",
		Rating:     4.5,
	}
	assert.NoError(t, req.Validate())
}

func TestCreateSupplierRequest_BadEmail(t *testing.T) {
	req := CreateSupplierRequest{Name: "x", Category: "c", Email: "not-an-email"}
	assert.Error(t, req.Validate())
}

func TestCreateSupplierRequest_RatingOutOfRange(t *testing.T) {
	req := CreateSupplierRequest{Name: "x", Category: "c", Rating: 7}
	assert.Error(t, req.Validate())
}

func TestOutreachRequest_Validate(t *testing.T) {
	assert.Error(t, (&OutreachRequest{}).Validate())
	assert.NoError(t, (&OutreachRequest{ProjectID: uuid.New()}).Validate())
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	req := CreateOrderRequest{
		SupplierID: uuid.New(),
		Items: []PurchaseOrderItem{
			{Item: "cement_bag_50kg", Unit: "bag", Quantity: 400, UnitPrice: 18.5},
		},
	}
	assert.NoError(t, req.Validate())
}

func TestCreateOrderRequest_NoItems(t *testing.T) {
	req := CreateOrderRequest{SupplierID: uuid.New()}
	assert.Error(t, req.Validate())
}
