package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/haitham/binaa-planner/internal/db"
	"github.com/haitham/binaa-planner/internal/quote"
	"github.com/haitham/binaa-planner/internal/risk"
	"github.com/haitham/binaa-planner/internal/types"
)

// generateQuote and analyzeRisks are package variables so tests can
// substitute deterministic implementations.
var generateQuote = quote.Generate

var analyzeRisks = func(ctx context.Context, project types.Project, apiKey string) (*types.RiskReport, error) {
	return risk.Analyze(ctx, project, apiKey)
}

// handleGenerateQuote drafts and stores a quote from the latest plan
func (s *Server) handleGenerateQuote(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
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

	planBytes, err := s.store.GetLatestPlan(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if planBytes == nil {
		noPlan := &ErrNoPlan{ProjectID: id}
		s.errorResponse(w, HTTPStatus(noPlan), noPlan.Error())
		return
	}

	var plan types.ComprehensivePlan
	if err := json.Unmarshal(planBytes, &plan); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Corrupt plan artifact: "+err.Error())
		return
	}

	generated, err := generateQuote(r.Context(), *project, plan.Estimate, s.apiKey)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Quote generation failed: "+err.Error())
		return
	}

	saved, err := s.store.SaveQuote(r.Context(), generated)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Quote generation joins the run ledger alongside plan runs, so the
	// run history shows every model call made for the project.
	s.recordGenerationRun(r.Context(), project.ID, db.StepQuote, saved)

	s.jsonResponse(w, http.StatusCreated, saved)
}

// recordGenerationRun writes a completed single-step run holding the
// generated artifact. Failures are logged, not surfaced; the primary
// record has already been stored.
func (s *Server) recordGenerationRun(ctx context.Context, projectID uuid.UUID, step string, content any) {
	runID, err := s.store.CreateRun(ctx, projectID)
	if err != nil {
		log.Printf("[project %s] failed to record %s run: %v", projectID, step, err)
		return
	}
	if err := s.store.SaveArtifact(ctx, runID, step, content); err != nil {
		log.Printf("[run %s] failed to save %s artifact: %v", runID, step, err)
	}
	if err := s.store.CompleteRun(ctx, runID, db.RunStatusCompleted, nil); err != nil {
		log.Printf("[run %s] failed to record completion: %v", runID, err)
	}
}

// handleListQuotes lists stored quotes for a project
func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	quotes, err := s.store.ListQuotes(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if quotes == nil {
		quotes = []types.Quote{}
	}
	s.jsonResponse(w, http.StatusOK, quotes)
}

// handleGetQuote returns a single stored quote by ID
func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stored, err := s.store.GetQuote(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		notFound := &ErrQuoteNotFound{QuoteID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// RiskResponse wraps a generated risk report with its timestamp
type RiskResponse struct {
	ProjectID   string            `json:"project_id"`
	GeneratedAt string            `json:"generated_at"`
	Report      *types.RiskReport `json:"report"`
}

// handleAnalyzeRisks produces a fresh risk report for a project
func (s *Server) handleAnalyzeRisks(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
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

	report, err := analyzeRisks(r.Context(), *project, s.apiKey)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Risk analysis failed: "+err.Error())
		return
	}

	s.recordGenerationRun(r.Context(), project.ID, db.StepRiskReport, report)

	s.jsonResponse(w, http.StatusOK, RiskResponse{
		ProjectID:   project.ID.String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Report:      report,
	})
}
