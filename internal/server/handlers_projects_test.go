package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haitham/binaa-planner/internal/types"
)

func TestHealth_OK(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestHealth_Degraded(t *testing.T) {
	s, store := newTestServer()
	store.pingErr = assert.AnError

	w := doJSON(s.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestNewWithStore_ListenAddr(t *testing.T) {
	s := NewWithStore(newFakeStore(), Config{Addr: ":9090"})
	assert.Equal(t, ":9090", s.httpServer.Addr)

	s = NewWithStore(newFakeStore(), Config{})
	assert.Equal(t, ":8080", s.httpServer.Addr)
}

func TestCreateProject(t *testing.T) {
	s, store := newTestServer()

	body := `{"name": "Villa Narjis", "description": "Luxury two-storey villa", "location": "Riyadh, KSA"}`
	w := doJSON(s.Handler(), http.MethodPost, "/projects", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Villa Narjis", created.Name)
	assert.Equal(t, types.ProjectStatusPlanning, created.Status)
	assert.Equal(t, types.MockUser().ID, created.OwnerID)
	assert.Len(t, store.projects, 1)
}

func TestCreateProject_MissingFields(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s.Handler(), http.MethodPost, "/projects", `{"name": "x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProject_BadBody(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s.Handler(), http.MethodPost, "/projects", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProject_NotFound(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s.Handler(), http.MethodGet, "/projects/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProject_BadID(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s.Handler(), http.MethodGet, "/projects/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProject_Partial(t *testing.T) {
	s, store := newTestServer()
	project, _ := store.CreateProject(t.Context(), &types.Project{
		OwnerID:     types.MockUser().ID,
		Name:        "Villa Narjis",
		Description: "Original description",
		Location:    "Riyadh, KSA",
		Status:      types.ProjectStatusPlanning,
	})

	w := doJSON(s.Handler(), http.MethodPut, "/projects/"+project.ID.String(), `{"status": "in_progress"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated types.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, types.ProjectStatusInProgress, updated.Status)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Villa Narjis", updated.Name)
	assert.Equal(t, "Original description", updated.Description)
}

func TestUpdateProject_BadEnum(t *testing.T) {
	s, store := newTestServer()
	project, _ := store.CreateProject(t.Context(), &types.Project{Name: "x"})

	w := doJSON(s.Handler(), http.MethodPut, "/projects/"+project.ID.String(), `{"project_type": "castle"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProject(t *testing.T) {
	s, store := newTestServer()
	project, _ := store.CreateProject(t.Context(), &types.Project{Name: "x"})

	w := doJSON(s.Handler(), http.MethodDelete, "/projects/"+project.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.projects)

	w = doJSON(s.Handler(), http.MethodDelete, "/projects/"+project.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProjects_EmptyIsArray(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s.Handler(), http.MethodGet, "/projects", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}
