// Package memory provides an in-memory dataset.Store (for testing/dev).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	runs map[string]*dataset.Dataset
}

func New() *Memory {
	return &Memory{runs: make(map[string]*dataset.Dataset)}
}

// SaveRun stores a copy of the dataset header; rows are shared, not copied.
func (m *Memory) SaveRun(_ context.Context, d *dataset.Dataset) error {
	if d.ID == "" {
		return fmt.Errorf("saving run: missing id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *d
	m.runs[d.ID] = &cp
	return nil
}

func (m *Memory) GetRun(_ context.Context, id string) (*dataset.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dataset.ErrRunNotFound, id)
	}
	cp := *d
	return &cp, nil
}

func (m *Memory) ListRuns(_ context.Context) ([]dataset.Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]dataset.Info, 0, len(m.runs))
	for _, d := range m.runs {
		out = append(out, d.Info())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) UpdateStatus(_ context.Context, id string, status dataset.Status, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.runs[id]
	if !ok {
		return fmt.Errorf("%w: %s", dataset.ErrRunNotFound, id)
	}
	d.Status = status
	d.Error = errMsg
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *Memory) RowsForPerson(_ context.Context, id string, person personnel.ID) ([]ledger.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dataset.ErrRunNotFound, id)
	}
	return ledger.Select(d.Rows, ledger.Filter{SubjectID: person}), nil
}

var _ dataset.Store = (*Memory)(nil)
