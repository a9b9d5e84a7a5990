package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/haitham/binaa-planner/internal/db"
	"github.com/haitham/binaa-planner/internal/pipeline"
	"github.com/haitham/binaa-planner/internal/types"
)

// RunResponse represents the response for plan generation requests
type RunResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// RunStatusResponse represents the response for GET /runs/{id}
type RunStatusResponse struct {
	RunID       string `json:"run_id"`
	ProjectID   string `json:"project_id"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// newPlanner builds the planner for one run. Overridden in tests to
// substitute stub pipeline steps.
var newPlanner = func(opts pipeline.Options) *pipeline.Planner {
	return pipeline.New(opts)
}

// handleGeneratePlan starts a plan-generation run for a project
func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
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

	// The body is optional; an empty body means no blueprint.
	var req types.GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	runID, err := s.store.CreateRun(r.Context(), project.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	planReq := types.PlanRequest{
		ProjectName:        project.Name,
		ProjectDescription: project.Description,
		Location:           project.Location,
		BlueprintDocument:  req.BlueprintDocument,
	}

	go s.runPlan(runID, *project, planReq)

	s.jsonResponse(w, http.StatusAccepted, RunResponse{
		RunID:  runID.String(),
		Status: "started",
	})
}

// runPlan executes the pipeline in the background and records artifacts
// and the run outcome.
func (s *Server) runPlan(runID uuid.UUID, project types.Project, req types.PlanRequest) {
	ctx := context.Background()

	planner := newPlanner(pipeline.Options{
		APIKey:      s.apiKey,
		StepTimeout: s.stepTimeout,
		OnProgress: func(event pipeline.ProgressEvent) {
			log.Printf("[run %s] %s: %s", runID, event.Step, event.Message)
			if event.Content == nil {
				return
			}
			if err := s.store.SaveArtifact(ctx, runID, event.Step, event.Content); err != nil {
				log.Printf("[run %s] failed to save %s artifact: %v", runID, event.Step, err)
			}
		},
	})

	plan, err := planner.GeneratePlan(ctx, req)
	if err != nil {
		log.Printf("[run %s] plan generation failed: %v", runID, err)
		if cerr := s.store.CompleteRun(ctx, runID, db.RunStatusFailed, err); cerr != nil {
			log.Printf("[run %s] failed to record failure: %v", runID, cerr)
		}
		return
	}

	if err := s.store.SaveArtifact(ctx, runID, db.StepPlanAssembled, plan); err != nil {
		log.Printf("[run %s] failed to save plan artifact: %v", runID, err)
	}

	// Backfill the classification onto the project record so later quote
	// and risk calls see it.
	project.ProjectType = plan.Classification.ProjectType
	project.QualityTier = plan.Classification.QualityTier
	if _, err := s.store.UpdateProject(ctx, &project); err != nil {
		log.Printf("[run %s] failed to update project classification: %v", runID, err)
	}

	if err := s.store.CompleteRun(ctx, runID, db.RunStatusCompleted, nil); err != nil {
		log.Printf("[run %s] failed to record completion: %v", runID, err)
	}
}

// handleGetPlan returns the latest assembled plan for a project
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
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

	content, err := s.store.GetLatestPlan(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		noPlan := &ErrNoPlan{ProjectID: id}
		s.errorResponse(w, HTTPStatus(noPlan), noPlan.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// handleListRuns lists recent runs for a project
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	runs, err := s.store.ListRuns(r.Context(), id, 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// knownSteps are the artifact step names a run may record.
var knownSteps = map[string]bool{
	db.StepClassification:    true,
	db.StepBlueprintAnalysis: true,
	db.StepCostEstimate:      true,
	db.StepPlanAssembled:     true,
	db.StepRiskReport:        true,
	db.StepQuote:             true,
}

// handleGetArtifact returns one stored artifact of a run
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	step := r.PathValue("step")
	if !knownSteps[step] {
		invalid := &ErrValidation{Field: "step", Message: "is not a known pipeline step"}
		s.errorResponse(w, HTTPStatus(invalid), invalid.Error())
		return
	}

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		notFound := &ErrRunNotFound{RunID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	content, err := s.store.GetArtifact(r.Context(), id, step)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "run recorded no "+step+" artifact")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// handleGetRun returns the status of one run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		notFound := &ErrRunNotFound{RunID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	resp := RunStatusResponse{
		RunID:     run.ID.String(),
		ProjectID: run.ProjectID.String(),
		Status:    run.Status,
		CreatedAt: run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if run.Error != nil {
		resp.Error = *run.Error
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
