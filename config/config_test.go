package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/generic"
)

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 136, cfg.PopulationSize())
	assert.Equal(t, int64(1234), cfg.Seed())
	assert.Equal(t, 14+90, cfg.TotalDays())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"no laborers", func(c *config.Config) { c.Population.LaborersPerTeam = 0 }, "population.laborers_per_team"},
		{"no teams", func(c *config.Config) { c.Population.TeamsPerShift = 0 }, "population.teams_per_shift"},
		{"size mismatch", func(c *config.Config) { c.Population.Size = 17 }, "population.size"},
		{"age range", func(c *config.Config) { c.Population.AgeMax = 10 }, "population.age_min"},
		{"no seeds", func(c *config.Config) { c.Seeds = nil }, "seeds"},
		{"bad date", func(c *config.Config) { c.SimulationStart = "Jan 1" }, "simulation_start"},
		{"analysis before start", func(c *config.Config) { c.AnalysisStart = "2023-12-01" }, "analysis_start"},
		{"zero days", func(c *config.Config) { c.AnalysisDays = 0 }, "analysis_days"},
		{"probability above one", func(c *config.Config) { c.Rates.Lapse = 1.5 }, "rates.lapse"},
		{"negative swap rate", func(c *config.Config) { c.Rolls.WorkerSwapRate = -0.1 }, "rolls.worker_swap_rate"},
		{"recorded variance", func(c *config.Config) { c.Rolls.RecordedEfficacyVariance = 1 }, "rolls.recorded_efficacy_variance"},
		{"log mode", func(c *config.Config) { c.Logging.Mode = "verbose" }, "logging.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var ve *config.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, generic.ErrInvalidConfig)
			assert.True(t, generic.IsClientError(err))
		})
	}
}

func TestValidate_ExplicitSizeMatches(t *testing.T) {
	cfg := config.Default()
	cfg.Population.LaborersPerTeam = 1
	cfg.Population.TeamsPerShift = 1
	cfg.Population.Size = 10
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	// GIVEN: A partial YAML file and a partial JSON file
	// WHEN: Loading them
	// THEN: Set fields override defaults, the rest keep default values

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "plant.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
population:
  laborers_per_team: 5
  teams_per_shift: 2
seeds: [7, 8, 9, 10]
oee_system_in_use: true
rates:
  lapse: 0.1
`), 0o644))

	cfg, err := config.LoadFromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Population.LaborersPerTeam)
	assert.Equal(t, 40, cfg.PopulationSize())
	assert.Equal(t, int64(7), cfg.Seed())
	assert.True(t, cfg.OEESystemInUse)
	assert.Equal(t, 0.1, cfg.Rates.Lapse)
	assert.Equal(t, 0.96, cfg.Rates.Presence)
	require.NoError(t, cfg.Validate())

	jsonPath := filepath.Join(dir, "plant.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"analysis_days": 12}`), 0o644))
	cfg, err = config.LoadFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.AnalysisDays)

	_, err = config.LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("population: [1, 2"), 0o644))
	_, err = config.LoadFromFile(bad)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WFSIM_SEED", "77")
	t.Setenv("WFSIM_DAYS", "20")
	t.Setenv("WFSIM_OEE", "true")
	t.Setenv("WFSIM_LOG", "prod")

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, int64(77), cfg.Seed())
	assert.Equal(t, 20, cfg.AnalysisDays)
	assert.True(t, cfg.OEESystemInUse)
	assert.Equal(t, "prod", cfg.Logging.Mode)

	t.Setenv("WFSIM_SEED", "abc")
	err := config.Default().ApplyEnv()
	assert.ErrorIs(t, err, generic.ErrInvalidConfig)
}

func TestClone_Independent(t *testing.T) {
	a := config.Default()
	b := a.Clone()
	b.SetSeed(1)
	b.AnalysisDays = 3
	assert.Equal(t, int64(1234), a.Seed())
	assert.Equal(t, 90, a.AnalysisDays)
}

func TestSetSeed_Empty(t *testing.T) {
	cfg := config.Default()
	cfg.Seeds = nil
	cfg.SetSeed(5)
	assert.Equal(t, []int64{5}, cfg.Seeds)
}

func TestPresets(t *testing.T) {
	presets := config.Presets()
	require.NotEmpty(t, presets)

	seen := map[string]bool{}
	for _, p := range presets {
		assert.False(t, seen[p.ID], "duplicate preset %s", p.ID)
		seen[p.ID] = true

		cfg, err := config.FromPreset(p.ID)
		require.NoError(t, err, p.ID)
		assert.NoError(t, cfg.Validate(), p.ID)
	}

	small, err := config.FromPreset("small-line")
	require.NoError(t, err)
	assert.Equal(t, 16, small.PopulationSize())

	oee, err := config.FromPreset("oee-plant")
	require.NoError(t, err)
	assert.True(t, oee.OEESystemInUse)

	_, err = config.FromPreset("nope")
	assert.ErrorIs(t, err, generic.ErrInvalidConfig)
}
