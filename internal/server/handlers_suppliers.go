package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/haitham/binaa-planner/internal/db"
	"github.com/haitham/binaa-planner/internal/llm"
	"github.com/haitham/binaa-planner/internal/marketing"
	"github.com/haitham/binaa-planner/internal/types"
)

// composeOutreach drafts an outreach message with a one-shot LLM client.
// Package variable so tests can substitute a deterministic implementation.
var composeOutreach = func(ctx context.Context, apiKey string, fetcher marketing.Fetcher, supplier types.Supplier, project types.Project) (*types.OutreachMessage, error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return marketing.NewComposer(client, fetcher).ComposeOutreach(ctx, supplier, project)
}

// handleCreateSupplier registers a supplier
func (s *Server) handleCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	supplier := &types.Supplier{
		Name:       req.Name,
		Category:   req.Category,
		City:       req.City,
		Phone:      req.Phone,
		Email:      req.Email,
		WebsiteURL: req.WebsiteURL,
		Rating:     req.Rating,
	}

	created, err := s.store.CreateSupplier(r.Context(), supplier)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListSuppliers lists suppliers, optionally filtered by category or city
func (s *Server) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	filters := db.SupplierFilters{
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
	}

	suppliers, err := s.store.ListSuppliers(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if suppliers == nil {
		suppliers = []types.Supplier{}
	}
	s.jsonResponse(w, http.StatusOK, suppliers)
}

// handleGetSupplier returns one supplier
func (s *Server) handleGetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	supplier, err := s.store.GetSupplier(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if supplier == nil {
		notFound := &ErrSupplierNotFound{SupplierID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, supplier)
}

// handleOutreach composes an outreach message to a supplier about a project
func (s *Server) handleOutreach(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.OutreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	supplier, err := s.store.GetSupplier(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if supplier == nil {
		notFound := &ErrSupplierNotFound{SupplierID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	project, err := s.store.GetProject(r.Context(), req.ProjectID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if project == nil {
		notFound := &ErrProjectNotFound{ProjectID: req.ProjectID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	message, err := composeOutreach(r.Context(), s.apiKey, s.fetcher, *supplier, *project)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Outreach generation failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, message)
}
