package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haitham/binaa-planner/internal/db"
	"github.com/haitham/binaa-planner/internal/estimate"
	"github.com/haitham/binaa-planner/internal/pipeline"
	"github.com/haitham/binaa-planner/internal/types"
)

type okClassifier struct{}

func (okClassifier) Classify(context.Context, string) (*types.ProjectClassification, error) {
	return &types.ProjectClassification{
		ProjectType: types.TypeVilla,
		QualityTier: types.TierLuxury,
	}, nil
}

type okEstimator struct{}

func (okEstimator) Estimate(context.Context, estimate.Request) (*types.CostEstimate, error) {
	return &types.CostEstimate{TotalCostLabel: "1,250,000 SAR"}, nil
}

type failingClassifier struct{}

func (failingClassifier) Classify(context.Context, string) (*types.ProjectClassification, error) {
	return nil, assert.AnError
}

type unusedAnalyzer struct{}

func (unusedAnalyzer) Analyze(context.Context, string) (*types.BlueprintFindings, error) {
	return &types.BlueprintFindings{}, nil
}

// withStubPlanner swaps the planner factory for the test's duration.
func withStubPlanner(t *testing.T, classifier pipeline.Classifier) {
	t.Helper()
	orig := newPlanner
	newPlanner = func(opts pipeline.Options) *pipeline.Planner {
		opts.Classifier = classifier
		opts.Analyzer = unusedAnalyzer{}
		opts.Estimator = okEstimator{}
		return pipeline.New(opts)
	}
	t.Cleanup(func() { newPlanner = orig })
}

func seedProject(t *testing.T, store *fakeStore) *types.Project {
	t.Helper()
	project, err := store.CreateProject(t.Context(), &types.Project{
		OwnerID:     types.MockUser().ID,
		Name:        "Villa Narjis",
		Description: "Luxury two-storey villa",
		Location:    "Riyadh, KSA",
		Status:      types.ProjectStatusPlanning,
	})
	require.NoError(t, err)
	return project
}

func TestGeneratePlan_CompletesRun(t *testing.T) {
	withStubPlanner(t, okClassifier{})
	s, store := newTestServer()
	project := seedProject(t, store)

	w := doJSON(s.Handler(), http.MethodPost, "/projects/"+project.ID.String()+"/plan", "")
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "started", resp.Status)
	runID := uuid.MustParse(resp.RunID)

	require.Eventually(t, func() bool {
		return store.runStatus(runID) == db.RunStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	// The assembled plan is retrievable and the classification was
	// backfilled onto the project.
	w = doJSON(s.Handler(), http.MethodGet, "/projects/"+project.ID.String()+"/plan", "")
	require.Equal(t, http.StatusOK, w.Code)

	var plan types.ComprehensivePlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "Villa Narjis", plan.ProjectName)
	assert.Equal(t, "1,250,000 SAR", plan.Estimate.TotalCostLabel)

	stored, err := store.GetProject(t.Context(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, types.TypeVilla, stored.ProjectType)
	assert.Equal(t, types.TierLuxury, stored.QualityTier)
}

func TestGeneratePlan_FailedRunIsRecorded(t *testing.T) {
	withStubPlanner(t, failingClassifier{})
	s, store := newTestServer()
	project := seedProject(t, store)

	w := doJSON(s.Handler(), http.MethodPost, "/projects/"+project.ID.String()+"/plan", "")
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	runID := uuid.MustParse(resp.RunID)

	require.Eventually(t, func() bool {
		return store.runStatus(runID) == db.RunStatusFailed
	}, 2*time.Second, 10*time.Millisecond)

	w = doJSON(s.Handler(), http.MethodGet, "/runs/"+resp.RunID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var status RunStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, db.RunStatusFailed, status.Status)
	assert.NotEmpty(t, status.Error)
	assert.NotEmpty(t, status.CompletedAt)
}

func TestGeneratePlan_ProjectNotFound(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s.Handler(), http.MethodPost, "/projects/"+uuid.NewString()+"/plan", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPlan_NoneYet(t *testing.T) {
	s, store := newTestServer()
	project := seedProject(t, store)

	w := doJSON(s.Handler(), http.MethodGet, "/projects/"+project.ID.String()+"/plan", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRuns(t *testing.T) {
	s, store := newTestServer()
	project := seedProject(t, store)
	_, err := store.CreateRun(t.Context(), project.ID)
	require.NoError(t, err)

	w := doJSON(s.Handler(), http.MethodGet, "/projects/"+project.ID.String()+"/runs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var runs []db.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)
}

func TestGetRun_NotFound(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s.Handler(), http.MethodGet, "/runs/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
