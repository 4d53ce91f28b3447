/*
handlers_test.go - Tests for API handlers

Tests for:
- Presets and default config
- Run creation, validation and queue execution
- Result endpoints (events, persons, metrics, CSV export)
- Error mapping (404, 409, 400)
*/
package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-sim/analytics"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/export"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/store/memory"
)

type testServer struct {
	store  *memory.Memory
	queue  *RunQueue
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.New()
	queue := NewRunQueue(store, nil, 4)
	queue.Start()
	t.Cleanup(queue.Stop)
	return &testServer{
		store:  store,
		queue:  queue,
		router: NewRouter(NewHandler(store, queue, nil)),
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// completedRun queues a small run and waits for the worker to finish it.
func (ts *testServer) completedRun(t *testing.T) string {
	t.Helper()
	days := 10
	rec := ts.do(t, http.MethodPost, "/api/runs", CreateRunRequest{Preset: "small-line", Days: &days})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var info dataset.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))

	require.Eventually(t, func() bool {
		d, err := ts.store.GetRun(context.Background(), info.ID)
		return err == nil && d.Status.IsTerminal()
	}, 30*time.Second, 20*time.Millisecond)

	d, err := ts.store.GetRun(context.Background(), info.ID)
	require.NoError(t, err)
	require.Equal(t, dataset.StatusCompleted, d.Status, d.Error)
	return info.ID
}

func TestListPresets(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var presets []PresetDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &presets))
	require.Len(t, presets, len(config.Presets()))
	assert.Equal(t, "small-line", presets[0].ID)
}

func TestDefaultConfig(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/config/default", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg config.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, config.Default().Seeds, cfg.Seeds)
	assert.NoError(t, cfg.Validate())
}

func TestCreateRun_Completes(t *testing.T) {
	// GIVEN: A queued small-line run
	// WHEN: The worker drains the queue
	// THEN: The run is listed as completed with rows and a seed

	ts := newTestServer(t)
	id := ts.completedRun(t)

	rec := ts.do(t, http.MethodGet, "/api/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []dataset.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, dataset.StatusCompleted, runs[0].Status)
	assert.Positive(t, runs[0].Rows)

	rec = ts.do(t, http.MethodGet, "/api/runs/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var run RunDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, int64(1234), run.Seed)
	assert.Equal(t, 10, run.Days-run.PrimingDays)
	require.NotNil(t, run.Accuracy)
}

func TestCreateRun_Overrides(t *testing.T) {
	// GIVEN: A request with a config body, a preset and a seed
	// WHEN: Building the config
	// THEN: Overrides apply in order: config, preset, scalars

	seed := int64(42)
	oee := true
	req := CreateRunRequest{
		Config: json.RawMessage(`{"analysis_days": 5, "rates": {"presence": 0.5}}`),
		Preset: "small-line",
		Seed:   &seed,
		OEE:    &oee,
	}
	cfg, err := req.BuildConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed())
	assert.Equal(t, 30, cfg.AnalysisDays, "preset overrides the config body")
	assert.Equal(t, 0.5, cfg.Rates.Presence)
	assert.Equal(t, 0.02, cfg.Rates.Idea, "unset fields keep defaults")
	assert.True(t, cfg.OEESystemInUse)
	assert.True(t, cfg.Logging.Quiet)
}

func TestCreateRun_InvalidConfig(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"unknown preset", CreateRunRequest{Preset: "nope"}},
		{"population mismatch", map[string]any{"config": map[string]any{"population": map[string]any{"size": 17}}}},
		{"negative days", map[string]any{"days": -1}},
		{"malformed config", map[string]any{"config": "not an object"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/runs", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Details)
		})
	}

	runs, err := ts.store.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs, "rejected configs are not stored")
}

func TestGetRun_NotFound(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{
		"/api/runs/missing",
		"/api/runs/missing/events",
		"/api/runs/missing/persons",
		"/api/runs/missing/metrics",
		"/api/runs/missing/export.csv",
	} {
		rec := ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestResults_NotReady(t *testing.T) {
	// GIVEN: A run stored as queued but never executed
	// WHEN: Requesting its results
	// THEN: 409 Conflict

	ts := newTestServer(t)
	d := dataset.New(config.Default())
	require.NoError(t, ts.store.SaveRun(context.Background(), d))

	for _, suffix := range []string{"/events", "/persons", "/metrics", "/export.csv"} {
		rec := ts.do(t, http.MethodGet, "/api/runs/"+d.ID+suffix, nil)
		assert.Equal(t, http.StatusConflict, rec.Code, suffix)
	}
}

func TestListEvents_Filters(t *testing.T) {
	ts := newTestServer(t)
	id := ts.completedRun(t)

	rec := ts.do(t, http.MethodGet, "/api/runs/"+id+"/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all EventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.NotEmpty(t, all.Rows)
	assert.Equal(t, len(all.Rows), all.Count)

	person := all.Rows[0].Subject.ID
	rec = ts.do(t, http.MethodGet, "/api/runs/"+id+"/events?person="+strconv.Itoa(int(person))+"&comptype=Efficacy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered EventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filtered))
	assert.NotEmpty(t, filtered.Rows)
	for _, row := range filtered.Rows {
		assert.Equal(t, person, row.Subject.ID)
		assert.Equal(t, ledger.Efficacy, row.Comptype())
	}

	from := all.Rows[len(all.Rows)-1].DayIndex
	rec = ts.do(t, http.MethodGet, "/api/runs/"+id+"/events?from="+strconv.Itoa(from), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tail EventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tail))
	for _, row := range tail.Rows {
		assert.GreaterOrEqual(t, row.DayIndex, from)
	}
}

func TestListEvents_InvalidQuery(t *testing.T) {
	ts := newTestServer(t)
	for _, q := range []string{"?person=abc", "?person=-3", "?comptype=Nap", "?from=x"} {
		rec := ts.do(t, http.MethodGet, "/api/runs/any/events"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestPersonsAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	id := ts.completedRun(t)

	rec := ts.do(t, http.MethodGet, "/api/runs/"+id+"/persons", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var persons []analytics.PersonSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &persons))
	assert.GreaterOrEqual(t, len(persons), 16)

	rec = ts.do(t, http.MethodGet, "/api/runs/"+id+"/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var metrics MetricsDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, id, metrics.RunID)
	assert.Equal(t, 10, metrics.Days-metrics.PrimingDays)
	assert.Positive(t, metrics.Accuracy.Rows)
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t)
	id := ts.completedRun(t)

	rec := ts.do(t, http.MethodGet, "/api/runs/"+id+"/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ledger")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, export.LedgerHeader, records[0])

	d, err := ts.store.GetRun(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, records, len(d.Rows)+1)

	rec = ts.do(t, http.MethodGet, "/api/runs/"+id+"/export.csv?table=persons", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	records, err = csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, export.PersonsHeader, records[0])
	assert.Len(t, records, len(d.Summaries)+1)

	rec = ts.do(t, http.MethodGet, "/api/runs/"+id+"/export.csv?table=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunQueue_Full(t *testing.T) {
	// GIVEN: A stopped queue with capacity 1
	// WHEN: Enqueuing two runs
	// THEN: The second fails with ErrQueueFull

	q := NewRunQueue(memory.New(), nil, 1)
	require.NoError(t, q.Enqueue(dataset.New(config.Default())))
	assert.ErrorIs(t, q.Enqueue(dataset.New(config.Default())), ErrQueueFull)
}

func TestRunQueue_Restart(t *testing.T) {
	// GIVEN: A queue that was started and stopped
	// WHEN: Starting it again and creating a run
	// THEN: The new worker completes the run

	ts := newTestServer(t)
	ts.queue.Stop()
	ts.queue.Start()

	id := ts.completedRun(t)
	assert.NotEmpty(t, id)
}
