/*
Package config defines the simulation configuration and its loaders.

PURPOSE:
  A single explicit Config struct replaces any ambient simulation state.
  It is passed by pointer into every engine. Config can be built from
  defaults, a YAML (or JSON) file, a named preset, and environment
  variable overrides, in that order.

LOAD ORDER:
  Default() -> LoadFromFile(path) -> ApplyPreset(id) -> ApplyEnv() -> Validate()

POPULATION ARITHMETIC:
  The org chart needs exactly
      N = (laborers_per_team + 1) × teams_per_shift × 3 + 4
  persons (1 director, 3 shift managers, one leader per team, laborers).
  When population.size is set explicitly it must match; otherwise it is
  derived. Validate() rejects any mismatch before setup.

ENVIRONMENT:
  WFSIM_SEED  overrides seeds[0]
  WFSIM_DAYS  overrides analysis_days
  WFSIM_OEE   overrides oee_system_in_use ("true"/"false")
  WFSIM_LOG   overrides logging.mode ("dev"/"prod")

SEE ALSO:
  - presets.go: Named plant configurations
  - sim/simulation.go: Consumer of Config
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/org"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config contains every input the engine consumes.
type Config struct {
	Population PopulationConfig `json:"population" yaml:"population"`

	// Seeds holds four seeds; only the first seeds the RNG.
	Seeds []int64 `json:"seeds" yaml:"seeds"`

	// SimulationStart is the first simulated day (YYYY-MM-DD).
	SimulationStart string `json:"simulation_start" yaml:"simulation_start"`

	// AnalysisStart is the first retained day. Days before it are priming
	// and are discarded after the run.
	AnalysisStart string `json:"analysis_start" yaml:"analysis_start"`

	// AnalysisDays is the number of retained days to simulate.
	AnalysisDays int `json:"analysis_days" yaml:"analysis_days"`

	// OEESystemInUse records Efficacy with full fidelity when true.
	OEESystemInUse bool `json:"oee_system_in_use" yaml:"oee_system_in_use"`

	Rates     RatesConfig     `json:"rates" yaml:"rates"`
	Strengths StrengthsConfig `json:"strengths" yaml:"strengths"`
	Bonuses   BonusConfig     `json:"bonuses" yaml:"bonuses"`
	Rolls     RollConfig      `json:"rolls" yaml:"rolls"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// PopulationConfig shapes the workforce.
type PopulationConfig struct {
	LaborersPerTeam int `json:"laborers_per_team" yaml:"laborers_per_team"`
	TeamsPerShift   int `json:"teams_per_shift" yaml:"teams_per_shift"`

	// Size is optional; 0 means derive from the team arithmetic.
	Size int `json:"size,omitempty" yaml:"size,omitempty"`

	AgeMin int `json:"age_min" yaml:"age_min"`
	AgeMax int `json:"age_max" yaml:"age_max"`

	TraitMean float64 `json:"trait_mean" yaml:"trait_mean"`
	TraitSD   float64 `json:"trait_sd" yaml:"trait_sd"`
}

// RatesConfig holds the BASE_RATE_* constants.
type RatesConfig struct {
	Presence            float64 `json:"presence" yaml:"presence"`
	Idea                float64 `json:"idea" yaml:"idea"`
	Lapse               float64 `json:"lapse" yaml:"lapse"`
	Feat                float64 `json:"feat" yaml:"feat"`
	Slip                float64 `json:"slip" yaml:"slip"`
	Teamwork            float64 `json:"teamwork" yaml:"teamwork"`
	Disruption          float64 `json:"disruption" yaml:"disruption"`
	Sacrifice           float64 `json:"sacrifice" yaml:"sacrifice"`
	Sabotage            float64 `json:"sabotage" yaml:"sabotage"`
	RecordingAccurately float64 `json:"recording_accurately" yaml:"recording_accurately"`
	EfficacyLevel       float64 `json:"efficacy_level" yaml:"efficacy_level"`

	// MaxEfficacyVariability is the SD of the daily efficacy draw.
	MaxEfficacyVariability float64 `json:"max_efficacy_variability" yaml:"max_efficacy_variability"`
}

// StrengthsConfig holds the STRENGTH_OF_* constants (0 disables an effect).
type StrengthsConfig struct {
	Traits            float64 `json:"traits" yaml:"traits"`
	Age               float64 `json:"age" yaml:"age"`
	Weekday           float64 `json:"weekday" yaml:"weekday"`
	DayOfMonth        float64 `json:"day_of_month" yaml:"day_of_month"`
	Season            float64 `json:"season" yaml:"season"`
	SameSexColleagues float64 `json:"same_sex_colleagues" yaml:"same_sex_colleagues"`
	SupervisorAgeGap  float64 `json:"supervisor_age_gap" yaml:"supervisor_age_gap"`
	Workstyle         float64 `json:"workstyle" yaml:"workstyle"`
	RecordingFeedback float64 `json:"recording_feedback" yaml:"recording_feedback"`
}

// BonusConfig holds the EFF_BONUS_MAX_* constants: the largest fractional
// change one effect can apply at full strength.
type BonusConfig struct {
	Age               float64 `json:"age" yaml:"age"`
	Weekday           float64 `json:"weekday" yaml:"weekday"`
	DayOfMonth        float64 `json:"day_of_month" yaml:"day_of_month"`
	DayOfMonthProb    float64 `json:"day_of_month_prob" yaml:"day_of_month_prob"`
	Season            float64 `json:"season" yaml:"season"`
	SameSexColleagues float64 `json:"same_sex_colleagues" yaml:"same_sex_colleagues"`
	SupervisorAgeGap  float64 `json:"supervisor_age_gap" yaml:"supervisor_age_gap"`
	Workstyle         float64 `json:"workstyle" yaml:"workstyle"`
	RecordingFeedback float64 `json:"recording_feedback" yaml:"recording_feedback"`
}

// RollConfig holds the defense-roll ceilings and other roll constants.
type RollConfig struct {
	// GoodDefenseMax and PoorDefenseMax are the ceilings of the uniform
	// draw a behavior probability must beat.
	GoodDefenseMax float64 `json:"good_defense_max" yaml:"good_defense_max"`
	PoorDefenseMax float64 `json:"poor_defense_max" yaml:"poor_defense_max"`

	// RecordingDefenseMax is the ceiling for the supervisor's recording roll.
	RecordingDefenseMax float64 `json:"recording_defense_max" yaml:"recording_defense_max"`

	// RecordedEfficacyVariance bounds the estimation error without OEE.
	RecordedEfficacyVariance float64 `json:"recorded_efficacy_variance" yaml:"recorded_efficacy_variance"`

	// SaturdayCallInRate scales presence probability on Saturdays.
	SaturdayCallInRate float64 `json:"saturday_call_in_rate" yaml:"saturday_call_in_rate"`

	// WorkerSwapRate is the daily chance that two laborers trade teams.
	WorkerSwapRate float64 `json:"worker_swap_rate" yaml:"worker_swap_rate"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Mode is "dev" (default, human readable) or "prod" (JSON).
	Mode string `json:"mode" yaml:"mode"`
	// Quiet suppresses per-day debug lines.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config for a 136-person plant and a 90-day analysis.
func Default() *Config {
	return &Config{
		Population: PopulationConfig{
			LaborersPerTeam: 10,
			TeamsPerShift:   4,
			AgeMin:          18,
			AgeMax:          65,
			TraitMean:       0.5,
			TraitSD:         0.17,
		},
		Seeds:           []int64{1234, 5678, 9012, 3456},
		SimulationStart: "2024-01-01",
		AnalysisStart:   "2024-01-15",
		AnalysisDays:    90,
		OEESystemInUse:  false,
		Rates: RatesConfig{
			Presence:               0.96,
			Idea:                   0.02,
			Lapse:                  0.025,
			Feat:                   0.015,
			Slip:                   0.02,
			Teamwork:               0.035,
			Disruption:             0.015,
			Sacrifice:              0.01,
			Sabotage:               0.002,
			RecordingAccurately:    0.75,
			EfficacyLevel:          1.0,
			MaxEfficacyVariability: 0.15,
		},
		Strengths: StrengthsConfig{
			Traits:            0.5,
			Age:               1,
			Weekday:           1,
			DayOfMonth:        1,
			Season:            1,
			SameSexColleagues: 1,
			SupervisorAgeGap:  1,
			Workstyle:         1,
			RecordingFeedback: 1,
		},
		Bonuses: BonusConfig{
			Age:               0.04,
			Weekday:           0.03,
			DayOfMonth:        0.05,
			DayOfMonthProb:    0.25,
			Season:            0.06,
			SameSexColleagues: 0.03,
			SupervisorAgeGap:  0.04,
			Workstyle:         0.08,
			RecordingFeedback: 0.05,
		},
		Rolls: RollConfig{
			GoodDefenseMax:           1.0,
			PoorDefenseMax:           1.25,
			RecordingDefenseMax:      1.0,
			RecordedEfficacyVariance: 0.2,
			SaturdayCallInRate:       0.03,
			WorkerSwapRate:           0.02,
		},
		Logging: LoggingConfig{Mode: "dev"},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// LoadFromFile loads a YAML or JSON config file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv applies environment variable overrides.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("WFSIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &ValidationError{Field: "WFSIM_SEED", Message: err.Error()}
		}
		c.SetSeed(seed)
	}
	if v := os.Getenv("WFSIM_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Field: "WFSIM_DAYS", Message: err.Error()}
		}
		c.AnalysisDays = days
	}
	if v := os.Getenv("WFSIM_OEE"); v != "" {
		oee, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Field: "WFSIM_OEE", Message: err.Error()}
		}
		c.OEESystemInUse = oee
	}
	if v := os.Getenv("WFSIM_LOG"); v != "" {
		c.Logging.Mode = v
	}
	return nil
}

// SetSeed replaces the primary seed.
func (c *Config) SetSeed(seed int64) {
	if len(c.Seeds) == 0 {
		c.Seeds = []int64{seed}
		return
	}
	c.Seeds[0] = seed
}

// Seed returns the primary seed.
func (c *Config) Seed() int64 {
	if len(c.Seeds) == 0 {
		return 0
	}
	return c.Seeds[0]
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Seeds = append([]int64(nil), c.Seeds...)
	return &out
}

// PopulationSize returns the derived population size.
func (c *Config) PopulationSize() int {
	return org.PopulationSize(c.Population.LaborersPerTeam, c.Population.TeamsPerShift)
}

// Dates parses the simulation and analysis start dates.
func (c *Config) Dates() (start, analysis generic.TimePoint, err error) {
	start, err = generic.ParseDate(c.SimulationStart)
	if err != nil {
		return start, analysis, &ValidationError{Field: "simulation_start", Message: err.Error()}
	}
	analysis, err = generic.ParseDate(c.AnalysisStart)
	if err != nil {
		return start, analysis, &ValidationError{Field: "analysis_start", Message: err.Error()}
	}
	return start, analysis, nil
}

// TotalDays returns priming plus analysis days.
func (c *Config) TotalDays() int {
	start, analysis, err := c.Dates()
	if err != nil {
		return c.AnalysisDays
	}
	return generic.DaysBetween(start, analysis) + c.AnalysisDays
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	p := c.Population
	if p.LaborersPerTeam < 1 {
		return &ValidationError{Field: "population.laborers_per_team", Message: fmt.Sprintf("must be at least 1, got %d", p.LaborersPerTeam)}
	}
	if p.TeamsPerShift < 1 {
		return &ValidationError{Field: "population.teams_per_shift", Message: fmt.Sprintf("must be at least 1, got %d", p.TeamsPerShift)}
	}
	if want := c.PopulationSize(); p.Size != 0 && p.Size != want {
		return &ValidationError{
			Field: "population.size",
			Message: fmt.Sprintf("population %d does not satisfy (laborers_per_team+1)×teams_per_shift×3+4 = %d",
				p.Size, want),
		}
	}
	if p.AgeMin < 16 || p.AgeMax < p.AgeMin {
		return &ValidationError{Field: "population.age_min", Message: fmt.Sprintf("invalid age range [%d, %d]", p.AgeMin, p.AgeMax)}
	}
	if p.TraitMean <= 0 || p.TraitMean >= 1 {
		return &ValidationError{Field: "population.trait_mean", Message: fmt.Sprintf("must be in (0, 1), got %f", p.TraitMean)}
	}
	if p.TraitSD <= 0 {
		return &ValidationError{Field: "population.trait_sd", Message: fmt.Sprintf("must be positive, got %f", p.TraitSD)}
	}
	if len(c.Seeds) == 0 {
		return &ValidationError{Field: "seeds", Message: "at least one seed is required"}
	}
	start, analysis, err := c.Dates()
	if err != nil {
		return err
	}
	if analysis.Before(start) {
		return &ValidationError{Field: "analysis_start", Message: "must not be before simulation_start"}
	}
	if c.AnalysisDays < 1 {
		return &ValidationError{Field: "analysis_days", Message: fmt.Sprintf("must be at least 1, got %d", c.AnalysisDays)}
	}

	probs := []struct {
		field string
		v     float64
	}{
		{"rates.presence", c.Rates.Presence},
		{"rates.idea", c.Rates.Idea},
		{"rates.lapse", c.Rates.Lapse},
		{"rates.feat", c.Rates.Feat},
		{"rates.slip", c.Rates.Slip},
		{"rates.teamwork", c.Rates.Teamwork},
		{"rates.disruption", c.Rates.Disruption},
		{"rates.sacrifice", c.Rates.Sacrifice},
		{"rates.sabotage", c.Rates.Sabotage},
		{"rates.recording_accurately", c.Rates.RecordingAccurately},
		{"rolls.saturday_call_in_rate", c.Rolls.SaturdayCallInRate},
		{"rolls.worker_swap_rate", c.Rolls.WorkerSwapRate},
	}
	for _, p := range probs {
		if p.v < 0 || p.v > 1 {
			return &ValidationError{Field: p.field, Message: fmt.Sprintf("must be between 0 and 1, got %f", p.v)}
		}
	}
	if c.Rates.EfficacyLevel <= 0 {
		return &ValidationError{Field: "rates.efficacy_level", Message: "must be positive"}
	}
	if c.Rates.MaxEfficacyVariability < 0 {
		return &ValidationError{Field: "rates.max_efficacy_variability", Message: "must be non-negative"}
	}
	if c.Rolls.GoodDefenseMax <= 0 || c.Rolls.PoorDefenseMax <= 0 || c.Rolls.RecordingDefenseMax <= 0 {
		return &ValidationError{Field: "rolls", Message: "defense roll ceilings must be positive"}
	}
	if c.Rolls.RecordedEfficacyVariance < 0 || c.Rolls.RecordedEfficacyVariance >= 1 {
		return &ValidationError{Field: "rolls.recorded_efficacy_variance", Message: "must be in [0, 1)"}
	}

	validModes := map[string]bool{"": true, "dev": true, "development": true, "prod": true, "production": true}
	if !validModes[strings.ToLower(c.Logging.Mode)] {
		return &ValidationError{Field: "logging.mode", Message: fmt.Sprintf("invalid mode %q (valid: dev, prod)", c.Logging.Mode)}
	}
	return nil
}

// =============================================================================
// ERRORS
// =============================================================================

// ValidationError names the offending field. It wraps generic.ErrInvalidConfig.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return generic.ErrInvalidConfig
}
