package personnel

import (
	"fmt"

	"github.com/warp/workforce-sim/generic"
)

// ErrOrgIntegrity is the sentinel every OrgIntegrityError unwraps to.
var ErrOrgIntegrity = generic.ErrOrgIntegrity

// OrgIntegrityError describes an org chart lookup that did not match exactly once.
type OrgIntegrityError struct {
	Scope    string // e.g. "shift Early", "team Late-2"
	Role     string
	Expected int
	Found    int
}

func (e *OrgIntegrityError) Error() string {
	return fmt.Sprintf("org integrity: %s has %d %s, expected %d", e.Scope, e.Found, e.Role, e.Expected)
}

func (e *OrgIntegrityError) Unwrap() error {
	return ErrOrgIntegrity
}
