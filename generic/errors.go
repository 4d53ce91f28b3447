/*
errors.go - Centralized error types for the simulation engine

PURPOSE:
  All cross-package error sentinels in one place so callers (CLI, API) can
  classify a failure and present a meaningful message instead of a trace.
  Domain packages wrap these with additional context.

ERROR CATEGORIES:
  1. Configuration errors - population arithmetic, bad dates, bad ranges
  2. Relational errors - org chart lookups that must match exactly once
  3. Store errors - persistence failures, unknown run IDs

  "Insufficient history" is NOT an error. Early simulated days simply have
  less lookback data; rolling-window helpers return zero and statistics
  helpers return an invalid Optional.

USAGE:
    if errors.Is(err, generic.ErrInvalidConfig) {
        // show the validation message to the user
    }

SEE ALSO:
  - stats.go: Optional results for degenerate statistics
  - config/config.go: ValidationError wraps ErrInvalidConfig
  - personnel/errors.go: OrgIntegrityError wraps ErrOrgIntegrity
*/
package generic

import (
	"errors"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfig is returned when a configuration cannot drive a run.
	// This is fatal: the caller must fix the config before setup.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrOrgIntegrity is returned when the org chart does not have exactly
	// one match for a lookup that requires one (e.g. the manager of a shift).
	ErrOrgIntegrity = errors.New("organization integrity violated")

	// ErrPersonNotFound is returned when an ID is not in the registry.
	ErrPersonNotFound = errors.New("person not found")

	// ErrRunNotFound is returned when a stored run does not exist.
	ErrRunNotFound = errors.New("run not found")

	// ErrRunNotReady is returned when a run exists but has not completed.
	ErrRunNotReady = errors.New("run not completed")

	// ErrAlreadyFinalized is returned when a simulation is stepped after finalization.
	ErrAlreadyFinalized = errors.New("simulation already finalized")
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrOrgIntegrity)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRunNotFound) ||
		errors.Is(err, ErrPersonNotFound)
}
