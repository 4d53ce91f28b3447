/*
Package dataset is the persisted form of a simulation run.

PURPOSE:
  A Dataset bundles everything needed to inspect a run later without
  re-simulating: the config that produced it, the trimmed ledger, the
  person records and the derived summary tables. It serializes to a single
  JSON blob (files, CLI) and is also stored row-by-row by store/sqlite so
  per-person queries do not need to load the whole blob.

LIFECYCLE:
  New(cfg) -> StatusQueued -> StatusRunning -> Complete(result) -> StatusCompleted
                                           \-> Fail(err)        -> StatusFailed

SEE ALSO:
  - store.go: Store interface
  - store/sqlite, store/memory: Implementations
  - sim/finalize.go: Result consumed by Complete
*/
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/warp/workforce-sim/analytics"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
	"github.com/warp/workforce-sim/sim"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether the run will not change anymore.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// =============================================================================
// DATASET
// =============================================================================

// Dataset is one stored run.
type Dataset struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Status    Status         `json:"status"`
	Error     string         `json:"error,omitempty"`
	Config    *config.Config `json:"config"`

	Days        int           `json:"days"`
	PrimingDays int           `json:"priming_days"`
	Elapsed     time.Duration `json:"elapsed"`

	Rows      []ledger.Row              `json:"rows"`
	Persons   []personnel.Record        `json:"persons"`
	Summaries []analytics.PersonSummary `json:"summaries"`
	Accuracy  *analytics.Accuracy       `json:"accuracy,omitempty"`
}

// New creates a queued dataset with a fresh ID.
func New(cfg *config.Config) *Dataset {
	now := time.Now().UTC()
	return &Dataset{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Status:    StatusQueued,
		Config:    cfg,
	}
}

// Complete fills the dataset from a finished run.
func (d *Dataset) Complete(res *sim.Result) {
	d.Rows = res.Rows
	d.Persons = res.Persons
	d.Summaries = res.Summaries
	acc := res.Accuracy
	d.Accuracy = &acc
	d.Days = res.Days
	d.PrimingDays = res.PrimingDays
	d.Elapsed = res.Elapsed
	d.Status = StatusCompleted
	d.Error = ""
	d.UpdatedAt = time.Now().UTC()
}

// Fail marks the run as failed.
func (d *Dataset) Fail(err error) {
	d.Status = StatusFailed
	d.Error = err.Error()
	d.UpdatedAt = time.Now().UTC()
}

// Ledger wraps the stored rows for querying.
func (d *Dataset) Ledger() *ledger.Ledger {
	return ledger.FromRows(d.Rows)
}

// Info is the list view of a run.
type Info struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Seed      int64     `json:"seed"`
	Persons   int       `json:"persons"`
	Rows      int       `json:"rows"`
	Days      int       `json:"days"`
}

// Info summarizes the dataset.
func (d *Dataset) Info() Info {
	info := Info{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		Status:    d.Status,
		Error:     d.Error,
		Persons:   len(d.Persons),
		Rows:      len(d.Rows),
		Days:      d.Days,
	}
	if d.Config != nil {
		info.Seed = d.Config.Seed()
	}
	return info
}

// =============================================================================
// BLOB
// =============================================================================

// Marshal encodes the dataset as one JSON blob.
func (d *Dataset) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal decodes a blob written by Marshal.
func Unmarshal(data []byte) (*Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	if d.ID == "" {
		return nil, fmt.Errorf("decoding dataset: missing id")
	}
	return &d, nil
}

// WriteFile saves the blob to path.
func (d *Dataset) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}

// ReadFile restores a dataset saved with WriteFile.
func ReadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Unmarshal(data)
}
