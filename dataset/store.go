package dataset

import (
	"context"

	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// ErrRunNotFound is returned for unknown run IDs.
var ErrRunNotFound = generic.ErrRunNotFound

// Store persists datasets.
type Store interface {
	// SaveRun inserts or replaces a run, rows included.
	SaveRun(ctx context.Context, d *Dataset) error

	// GetRun loads a full run. Unknown IDs return ErrRunNotFound.
	GetRun(ctx context.Context, id string) (*Dataset, error)

	// ListRuns returns every run, newest first.
	ListRuns(ctx context.Context) ([]Info, error)

	// UpdateStatus changes the status (and error message) of a run.
	UpdateStatus(ctx context.Context, id string, status Status, errMsg string) error

	// RowsForPerson returns the ledger rows of one subject, in Seq order.
	RowsForPerson(ctx context.Context, id string, person personnel.ID) ([]ledger.Row, error)
}
