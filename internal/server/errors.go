package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrProjectNotFound indicates the project does not exist
type ErrProjectNotFound struct {
	ProjectID uuid.UUID
}

func (e *ErrProjectNotFound) Error() string {
	return fmt.Sprintf("project not found: %s", e.ProjectID)
}

// ErrSupplierNotFound indicates the supplier does not exist
type ErrSupplierNotFound struct {
	SupplierID uuid.UUID
}

func (e *ErrSupplierNotFound) Error() string {
	return fmt.Sprintf("supplier not found: %s", e.SupplierID)
}

// ErrRunNotFound indicates the plan run does not exist
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrQuoteNotFound indicates the quote does not exist
type ErrQuoteNotFound struct {
	QuoteID uuid.UUID
}

func (e *ErrQuoteNotFound) Error() string {
	return fmt.Sprintf("quote not found: %s", e.QuoteID)
}

// ErrOrderNotFound indicates the purchase order does not exist
type ErrOrderNotFound struct {
	OrderID uuid.UUID
}

func (e *ErrOrderNotFound) Error() string {
	return fmt.Sprintf("purchase order not found: %s", e.OrderID)
}

// ErrNoPlan indicates no completed plan exists for the project yet
type ErrNoPlan struct {
	ProjectID uuid.UUID
}

func (e *ErrNoPlan) Error() string {
	return fmt.Sprintf("no completed plan for project: %s", e.ProjectID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrProjectNotFound, *ErrSupplierNotFound, *ErrRunNotFound, *ErrQuoteNotFound, *ErrOrderNotFound, *ErrNoPlan:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
