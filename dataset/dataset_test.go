package dataset_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/sim"
)

func completedDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	cfg, err := config.FromPreset("small-line")
	require.NoError(t, err)
	cfg.AnalysisDays = 10

	s, err := sim.New(cfg, nil)
	require.NoError(t, err)
	res, err := s.Run(context.Background())
	require.NoError(t, err)

	d := dataset.New(cfg)
	d.Complete(res)
	return d
}

func TestDataset_Lifecycle(t *testing.T) {
	d := dataset.New(config.Default())
	assert.Equal(t, dataset.StatusQueued, d.Status)
	assert.NotEmpty(t, d.ID)
	assert.False(t, d.Status.IsTerminal())

	d.Fail(errors.New("boom"))
	assert.Equal(t, dataset.StatusFailed, d.Status)
	assert.Equal(t, "boom", d.Error)
	assert.True(t, d.Status.IsTerminal())
}

func TestDataset_IDsUnique(t *testing.T) {
	a, b := dataset.New(config.Default()), dataset.New(config.Default())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDataset_FileRestoresRun(t *testing.T) {
	// GIVEN: A completed run saved to a file
	// WHEN: Reading it back
	// THEN: The ledger, persons and summaries are restored without re-simulating

	d := completedDataset(t)
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, d.WriteFile(path))

	restored, err := dataset.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, d.ID, restored.ID)
	assert.Equal(t, dataset.StatusCompleted, restored.Status)
	assert.Equal(t, d.Config.Seeds, restored.Config.Seeds)
	assert.Equal(t, d.Persons, restored.Persons)
	require.Len(t, restored.Rows, len(d.Rows))
	for i := range d.Rows {
		a, b := d.Rows[i], restored.Rows[i]
		assert.Equal(t, a.Seq, b.Seq)
		assert.Equal(t, a.Comptype(), b.Comptype())
		assert.Equal(t, a.ConfMat, b.ConfMat)
		assert.True(t, a.Timestamp.Equal(b.Timestamp))
		assert.Equal(t, a.MDay, b.MDay)
	}
	require.NotNil(t, restored.Accuracy)
	assert.Equal(t, d.Accuracy.Rows, restored.Accuracy.Rows)
	assert.Equal(t, d.Info().Rows, restored.Info().Rows)
	assert.Equal(t, d.Rows[len(d.Rows)-1].Seq, restored.Ledger().Rows()[len(d.Rows)-1].Seq)
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := dataset.Unmarshal([]byte(`{"status":"completed"}`))
	assert.Error(t, err)

	_, err = dataset.Unmarshal([]byte(`not json`))
	assert.Error(t, err)
}

func TestDataset_Info(t *testing.T) {
	d := completedDataset(t)
	info := d.Info()

	assert.Equal(t, d.ID, info.ID)
	assert.Equal(t, int64(1234), info.Seed)
	assert.GreaterOrEqual(t, info.Persons, 16)
	assert.Equal(t, len(d.Rows), info.Rows)
}

func TestErrRunNotFound_IsNotFound(t *testing.T) {
	assert.True(t, generic.IsNotFound(dataset.ErrRunNotFound))
}
