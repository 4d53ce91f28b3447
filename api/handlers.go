/*
handlers.go - HTTP API handlers for the workforce simulation service

PURPOSE:
  Exposes simulation runs via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the run queue and the dataset store.

ENDPOINTS:
  Configuration:
    GET    /api/presets                  List named configurations
    GET    /api/config/default           Default configuration

  Runs:
    POST   /api/runs                     Queue a run (202 Accepted)
    GET    /api/runs                     List runs, newest first
    GET    /api/runs/{id}                Run detail (status, config, accuracy)

  Results (completed runs only, 409 otherwise):
    GET    /api/runs/{id}/events         Ledger rows (?person=&comptype=&from=&to=)
    GET    /api/runs/{id}/persons        Per-person summary table
    GET    /api/runs/{id}/metrics        Recording accuracy and timing
    GET    /api/runs/{id}/export.csv     Ledger CSV (?table=persons for summaries)

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Run persistence
  - Queue: Background executor for queued runs

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid config, invalid query parameters
  - 404: Run not found
  - 409: Run not completed yet
  - 503: Queue full
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - queue.go: Run execution
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/export"
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/logger"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store dataset.Store
	Queue *RunQueue
	log   *logger.Logger
}

// NewHandler creates a new handler with the given store and queue.
func NewHandler(store dataset.Store, queue *RunQueue, log *logger.Logger) *Handler {
	return &Handler{
		Store: store,
		Queue: queue,
		log:   logger.OrNop(log),
	}
}

// =============================================================================
// CONFIGURATION HANDLERS
// =============================================================================

// ListPresets returns all named configurations.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets := config.Presets()
	dtos := make([]PresetDTO, len(presets))
	for i, p := range presets {
		dtos[i] = PresetDTO{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// DefaultConfig returns the default configuration.
func (h *Handler) DefaultConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.Default())
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// CreateRun validates the config, stores a queued run and enqueues it.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req CreateRunRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	cfg, err := req.BuildConfig()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid configuration", err)
		return
	}

	d := dataset.New(cfg)
	if err := h.Store.SaveRun(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save run", err)
		return
	}
	info := d.Info()

	if err := h.Queue.Enqueue(d); err != nil {
		h.Store.UpdateStatus(r.Context(), d.ID, dataset.StatusFailed, err.Error())
		writeError(w, http.StatusServiceUnavailable, "Run queue is full", err)
		return
	}

	h.log.Info("run queued", "run_id", info.ID, "seed", info.Seed, "preset", req.Preset)
	w.Header().Set("Location", "/api/runs/"+info.ID)
	writeJSON(w, http.StatusAccepted, info)
}

// ListRuns returns all runs, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}
	if runs == nil {
		runs = []dataset.Info{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns a run's status, config and accuracy.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	d, err := h.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRunDTO(d))
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

// ListEvents returns ledger rows, optionally filtered by person, comptype
// and day range.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	var rows []ledger.Row
	if filter.SubjectID != 0 {
		// Person queries go straight to the subject index.
		d, err := h.completedRun(r, id, false)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		rows, err = h.Store.RowsForPerson(r.Context(), d.ID, filter.SubjectID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		rows = ledger.Select(rows, filter)
	} else {
		d, err := h.completedRun(r, id, true)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		rows = ledger.Select(d.Rows, filter)
	}
	if rows == nil {
		rows = []ledger.Row{}
	}

	writeJSON(w, http.StatusOK, EventsResponse{RunID: id, Count: len(rows), Rows: rows})
}

// ListPersons returns the per-person summary table.
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	d, err := h.completedRun(r, chi.URLParam(r, "id"), false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d.Summaries)
}

// GetMetrics returns the recording accuracy of a run.
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	d, err := h.completedRun(r, chi.URLParam(r, "id"), false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	dto := MetricsDTO{
		RunID:       d.ID,
		Days:        d.Days,
		PrimingDays: d.PrimingDays,
		Persons:     len(d.Persons),
		Elapsed:     d.Elapsed.String(),
	}
	if d.Accuracy != nil {
		dto.Accuracy = *d.Accuracy
	}
	writeJSON(w, http.StatusOK, dto)
}

// ExportCSV streams the ledger (or, with ?table=persons, the person
// summaries) as CSV.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("table")
	if table != "" && table != "ledger" && table != "persons" {
		writeError(w, http.StatusBadRequest, "Invalid table", fmt.Errorf("unknown table %q", table))
		return
	}

	d, err := h.completedRun(r, chi.URLParam(r, "id"), true)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	name := fmt.Sprintf("run-%s-%s.csv", d.ID, orDefault(table, "ledger"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)

	if table == "persons" {
		err = export.WritePersonsCSV(w, d.Summaries)
	} else {
		err = export.WriteLedgerCSV(w, d.Rows)
	}
	if err != nil {
		// Headers are already sent.
		h.log.Error("writing csv", "run_id", d.ID, "error", err)
	}
}

// completedRun loads a run and fails with ErrRunNotReady unless it has
// completed. Rows are only kept when withRows is set.
func (h *Handler) completedRun(r *http.Request, id string, withRows bool) (*dataset.Dataset, error) {
	d, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if d.Status != dataset.StatusCompleted {
		return nil, fmt.Errorf("%w: run %s is %s", generic.ErrRunNotReady, id, d.Status)
	}
	if !withRows {
		d.Rows = nil
	}
	return d, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func parseFilter(r *http.Request) (ledger.Filter, error) {
	q := r.URL.Query()
	var f ledger.Filter

	if v := q.Get("person"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return f, fmt.Errorf("person must be a positive integer, got %q", v)
		}
		f.SubjectID = personnel.ID(id)
	}
	if v := q.Get("comptype"); v != "" {
		c := ledger.Comptype(v)
		if c.Type() == "" {
			return f, fmt.Errorf("unknown comptype %q", v)
		}
		f.Comptype = c
	}
	for _, p := range []struct {
		key string
		dst **int
	}{{"from", &f.FromDay}, {"to", &f.ToDay}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		day, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("%s must be an integer day index, got %q", p.key, v)
		}
		*p.dst = &day
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps domain errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Run not found", err)
	case errors.Is(err, generic.ErrRunNotReady):
		writeError(w, http.StatusConflict, "Run not completed", err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
