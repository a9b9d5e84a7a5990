package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haitham/binaa-planner/internal/db"
	"github.com/haitham/binaa-planner/internal/types"
)

// fakeStore is an in-memory Store used by handler tests.
type fakeStore struct {
	mu        sync.Mutex
	pingErr   error
	projects  map[uuid.UUID]types.Project
	suppliers map[uuid.UUID]types.Supplier
	orders    map[uuid.UUID]types.PurchaseOrder
	quotes    map[uuid.UUID]types.Quote
	runs      map[uuid.UUID]db.Run
	artifacts map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects:  map[uuid.UUID]types.Project{},
		suppliers: map[uuid.UUID]types.Supplier{},
		orders:    map[uuid.UUID]types.PurchaseOrder{},
		quotes:    map[uuid.UUID]types.Quote{},
		runs:      map[uuid.UUID]db.Run{},
		artifacts: map[string][]byte{},
	}
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CreateProject(_ context.Context, project *types.Project) (*types.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *project
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.projects[p.ID] = p
	return &p, nil
}

func (f *fakeStore) GetProject(_ context.Context, id uuid.UUID) (*types.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) ListProjects(_ context.Context, ownerID uuid.UUID) ([]types.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateProject(_ context.Context, project *types.Project) (*types.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[project.ID]; !ok {
		return nil, nil
	}
	p := *project
	p.UpdatedAt = time.Now()
	f.projects[p.ID] = p
	return &p, nil
}

func (f *fakeStore) DeleteProject(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return fmt.Errorf("project not found: %s", id)
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeStore) CreateSupplier(_ context.Context, supplier *types.Supplier) (*types.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := *supplier
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	f.suppliers[s.ID] = s
	return &s, nil
}

func (f *fakeStore) GetSupplier(_ context.Context, id uuid.UUID) (*types.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStore) ListSuppliers(_ context.Context, filters db.SupplierFilters) ([]types.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Supplier
	for _, s := range f.suppliers {
		if filters.Category != "" && s.Category != filters.Category {
			continue
		}
		if filters.City != "" && s.City != filters.City {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) CreatePurchaseOrder(_ context.Context, order *types.PurchaseOrder) (*types.PurchaseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := *order
	o.ID = uuid.New()
	if o.Status == "" {
		o.Status = db.OrderStatusDraft
	}
	o.CreatedAt = time.Now()
	f.orders[o.ID] = o
	return &o, nil
}

func (f *fakeStore) GetPurchaseOrder(_ context.Context, id uuid.UUID) (*types.PurchaseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (f *fakeStore) UpdatePurchaseOrderStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return fmt.Errorf("purchase order not found: %s", id)
	}
	o.Status = status
	f.orders[id] = o
	return nil
}

func (f *fakeStore) ListPurchaseOrders(_ context.Context, projectID uuid.UUID) ([]types.PurchaseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.PurchaseOrder
	for _, o := range f.orders {
		if o.ProjectID == projectID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveQuote(_ context.Context, quote *types.Quote) (*types.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := *quote
	q.ID = uuid.New()
	q.CreatedAt = time.Now()
	f.quotes[q.ID] = q
	return &q, nil
}

func (f *fakeStore) GetQuote(_ context.Context, id uuid.UUID) (*types.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (f *fakeStore) ListQuotes(_ context.Context, projectID uuid.UUID) ([]types.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Quote
	for _, q := range f.quotes {
		if q.ProjectID == projectID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateRun(_ context.Context, projectID uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run := db.Run{
		ID:        uuid.New(),
		ProjectID: projectID,
		Status:    db.RunStatusRunning,
		CreatedAt: time.Now(),
	}
	f.runs[run.ID] = run
	return run.ID, nil
}

func (f *fakeStore) CompleteRun(_ context.Context, runID uuid.UUID, status string, runErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return fmt.Errorf("run not found: %s", runID)
	}
	run.Status = status
	if runErr != nil {
		msg := runErr.Error()
		run.Error = &msg
	}
	now := time.Now()
	run.CompletedAt = &now
	f.runs[runID] = run
	return nil
}

func (f *fakeStore) SaveArtifact(_ context.Context, runID uuid.UUID, step string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.artifacts[runID.String()+"/"+step] = jsonBytes
	return nil
}

func (f *fakeStore) GetArtifact(_ context.Context, runID uuid.UUID, step string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.artifacts[runID.String()+"/"+step]
	if !ok {
		return nil, nil
	}
	return content, nil
}

func (f *fakeStore) GetRun(_ context.Context, runID uuid.UUID) (*db.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

func (f *fakeStore) ListRuns(_ context.Context, projectID uuid.UUID, _ int) ([]db.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Run
	for _, run := range f.runs {
		if run.ProjectID == projectID {
			out = append(out, run)
		}
	}
	return out, nil
}

func (f *fakeStore) GetLatestPlan(_ context.Context, projectID uuid.UUID) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest []byte
	var latestAt time.Time
	for _, run := range f.runs {
		if run.ProjectID != projectID || run.Status != db.RunStatusCompleted {
			continue
		}
		content, ok := f.artifacts[run.ID.String()+"/"+db.StepPlanAssembled]
		if !ok {
			continue
		}
		if latest == nil || run.CreatedAt.After(latestAt) {
			latest = content
			latestAt = run.CreatedAt
		}
	}
	return latest, nil
}

func (f *fakeStore) runStatus(runID uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs[runID].Status
}

// artifactForStep returns the single stored artifact for a step, across
// all runs.
func (f *fakeStore) artifactForStep(step string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, content := range f.artifacts {
		if strings.HasSuffix(key, "/"+step) {
			return content
		}
	}
	return nil
}

// newTestServer wires a server around a fresh fake store.
func newTestServer() (*Server, *fakeStore) {
	store := newFakeStore()
	s := NewWithStore(store, Config{APIKey: "test-key"})
	return s, store
}

func doJSON(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}
