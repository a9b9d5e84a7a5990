package server

import (
	"encoding/json"
	"net/http"

	"github.com/haitham/binaa-planner/internal/db"
	"github.com/haitham/binaa-planner/internal/types"
)

// handleCreateOrder creates a purchase order for a project
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if project == nil {
		notFound := &ErrProjectNotFound{ProjectID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	supplier, err := s.store.GetSupplier(r.Context(), req.SupplierID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if supplier == nil {
		notFound := &ErrSupplierNotFound{SupplierID: req.SupplierID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	order := &types.PurchaseOrder{
		ProjectID:  project.ID,
		SupplierID: supplier.ID,
		Items:      req.Items,
	}

	created, err := s.store.CreatePurchaseOrder(r.Context(), order)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListOrders lists purchase orders for a project
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	orders, err := s.store.ListPurchaseOrders(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if orders == nil {
		orders = []types.PurchaseOrder{}
	}
	s.jsonResponse(w, http.StatusOK, orders)
}

// handleGetOrder returns a single purchase order by ID
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	order, err := s.store.GetPurchaseOrder(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if order == nil {
		notFound := &ErrOrderNotFound{OrderID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, order)
}

// handleUpdateOrderStatus transitions a purchase order to a new status
func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	switch req.Status {
	case db.OrderStatusDraft, db.OrderStatusSent, db.OrderStatusConfirmed, db.OrderStatusCancelled:
	default:
		invalid := &ErrValidation{Field: "status", Message: "must be one of draft, sent, confirmed, cancelled"}
		s.errorResponse(w, HTTPStatus(invalid), invalid.Error())
		return
	}

	order, err := s.store.GetPurchaseOrder(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if order == nil {
		notFound := &ErrOrderNotFound{OrderID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	if err := s.store.UpdatePurchaseOrderStatus(r.Context(), id, req.Status); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	order.Status = req.Status
	s.jsonResponse(w, http.StatusOK, order)
}
