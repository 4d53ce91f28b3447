package config

import "fmt"

// =============================================================================
// PRESETS - Named plant configurations
// =============================================================================

// Preset is a named modification of the default configuration.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	apply       func(*Config)
}

var presets = []Preset{
	{
		ID:          "small-line",
		Name:        "Small Line",
		Description: "One team per shift, three laborers per team (16 persons), 30 days",
		apply: func(c *Config) {
			c.Population.LaborersPerTeam = 3
			c.Population.TeamsPerShift = 1
			c.AnalysisDays = 30
		},
	},
	{
		ID:          "standard-plant",
		Name:        "Standard Plant",
		Description: "Four teams per shift, ten laborers per team (136 persons), 90 days",
		apply:       func(c *Config) {},
	},
	{
		ID:          "large-plant",
		Name:        "Large Plant",
		Description: "Eight teams per shift, twelve laborers per team (316 persons), 180 days",
		apply: func(c *Config) {
			c.Population.LaborersPerTeam = 12
			c.Population.TeamsPerShift = 8
			c.AnalysisDays = 180
		},
	},
	{
		ID:          "oee-plant",
		Name:        "OEE-Instrumented Plant",
		Description: "Standard plant with an automatic efficacy measurement system",
		apply: func(c *Config) {
			c.OEESystemInUse = true
		},
	},
	{
		ID:          "inattentive-supervisors",
		Name:        "Inattentive Supervisors",
		Description: "Standard plant where supervisors notice far fewer behaviors",
		apply: func(c *Config) {
			c.Rates.RecordingAccurately = 0.4
			c.Rolls.RecordedEfficacyVariance = 0.35
		},
	},
}

// Presets lists all presets.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// ApplyPreset modifies the config according to a named preset.
func (c *Config) ApplyPreset(id string) error {
	for _, p := range presets {
		if p.ID == id {
			p.apply(c)
			return nil
		}
	}
	return &ValidationError{Field: "preset", Message: fmt.Sprintf("unknown preset %q", id)}
}

// FromPreset returns the defaults with a preset applied.
func FromPreset(id string) (*Config, error) {
	c := Default()
	if err := c.ApplyPreset(id); err != nil {
		return nil, err
	}
	return c, nil
}
