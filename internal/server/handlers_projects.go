package server

import (
	"encoding/json"
	"net/http"

	"github.com/haitham/binaa-planner/internal/types"
)

// handleCreateProject creates a new project owned by the current user
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req types.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	project := &types.Project{
		OwnerID:     s.currentUser.ID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		ProjectType: req.ProjectType,
		QualityTier: req.QualityTier,
		Status:      types.ProjectStatusPlanning,
	}

	created, err := s.store.CreateProject(r.Context(), project)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListProjects lists the current user's projects
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context(), s.currentUser.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if projects == nil {
		projects = []types.Project{}
	}
	s.jsonResponse(w, http.StatusOK, projects)
}

// handleGetProject returns one project
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
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

	s.jsonResponse(w, http.StatusOK, project)
}

// handleUpdateProject applies a partial update to a project
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.UpdateProjectRequest
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

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Location != "" {
		project.Location = req.Location
	}
	if req.ProjectType != "" {
		project.ProjectType = req.ProjectType
	}
	if req.QualityTier != "" {
		project.QualityTier = req.QualityTier
	}
	if req.Status != "" {
		project.Status = req.Status
	}

	updated, err := s.store.UpdateProject(r.Context(), project)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteProject deletes a project and its dependent records
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
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

	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
