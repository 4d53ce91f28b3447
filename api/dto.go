/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Domain types that are
  already shaped for clients (dataset.Info, analytics.PersonSummary,
  ledger.Row) are returned as-is; only requests and composite responses
  get their own types here.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Runs:
    CreateRunRequest, RunDTO

  Results:
    EventsResponse, MetricsDTO

  Presets:
    PresetDTO

VALIDATION:
  Validation is done in handlers via config.Validate, not in DTOs.

SEE ALSO:
  - handlers.go: Uses these types
  - config/config.go: Config JSON layout
*/
package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/workforce-sim/analytics"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/ledger"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CreateRunRequest is the request to queue a simulation run.
// Config fields are laid over the defaults, then the preset, then the
// scalar overrides.
type CreateRunRequest struct {
	Preset string          `json:"preset,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
	Seed   *int64          `json:"seed,omitempty"`
	Days   *int            `json:"days,omitempty"`
	OEE    *bool           `json:"oee,omitempty"`
}

// BuildConfig resolves the request into a validated config.
func (req CreateRunRequest) BuildConfig() (*config.Config, error) {
	cfg := config.Default()
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, cfg); err != nil {
			return nil, &config.ValidationError{Field: "config", Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
	}
	if req.Preset != "" {
		if err := cfg.ApplyPreset(req.Preset); err != nil {
			return nil, err
		}
	}
	if req.Seed != nil {
		cfg.SetSeed(*req.Seed)
	}
	if req.Days != nil {
		cfg.AnalysisDays = *req.Days
	}
	if req.OEE != nil {
		cfg.OEESystemInUse = *req.OEE
	}
	// Per-day debug lines are too noisy for a server.
	cfg.Logging.Quiet = true

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunDTO is the detail view of a run, without its rows.
type RunDTO struct {
	dataset.Info
	UpdatedAt   string              `json:"updated_at"`
	PrimingDays int                 `json:"priming_days"`
	Elapsed     string              `json:"elapsed,omitempty"`
	Config      *config.Config      `json:"config"`
	Accuracy    *analytics.Accuracy `json:"accuracy,omitempty"`
}

func toRunDTO(d *dataset.Dataset) RunDTO {
	dto := RunDTO{
		Info:        d.Info(),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
		PrimingDays: d.PrimingDays,
		Config:      d.Config,
		Accuracy:    d.Accuracy,
	}
	if d.Elapsed > 0 {
		dto.Elapsed = d.Elapsed.String()
	}
	return dto
}

// EventsResponse wraps a filtered slice of ledger rows.
type EventsResponse struct {
	RunID string       `json:"run_id"`
	Count int          `json:"count"`
	Rows  []ledger.Row `json:"rows"`
}

// MetricsDTO reports recording accuracy and run timing.
type MetricsDTO struct {
	RunID       string             `json:"run_id"`
	Days        int                `json:"days"`
	PrimingDays int                `json:"priming_days"`
	Persons     int                `json:"persons"`
	Elapsed     string             `json:"elapsed"`
	Accuracy    analytics.Accuracy `json:"accuracy"`
}

// PresetDTO represents a named configuration.
type PresetDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
