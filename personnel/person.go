/*
Package personnel provides the Person entity, its generator, the registry
arena, and the org-chart placement and relationship builders.

PURPOSE:
  A Person is the central mutable record of the simulation: demographics,
  latent traits, base and daily-modified probabilities, org links and the
  per-day history used by rolling-window rules.

KEY CONCEPTS:
  - Registry: dense arena of persons, addressed by stable integer ID
  - Link: supervisor reference that distinguishes "not yet assigned" from
    "has no supervisor" (the Production Director)
  - History: one dense day series per tracked metric
  - Base vs Modified: Base is computed once at creation, Modified is reset
    to Base every night and recomputed by the modifier engine

LIFECYCLE:
  Generator.New() -> AssignRoles / AssignShiftsAndTeams -> RebuildRelations
  -> daily loop -> Separate() (flag only, never deleted) -> replacement
  via Generator.New() + TakeSlot()

SEE ALSO:
  - assignment.go: Rank-then-bucket-fill placement
  - relations.go: Supervisor / colleague / subordinate edges
  - history.go: Rolling-window lookback
*/
package personnel

import (
	"github.com/warp/workforce-sim/org"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// ID is a stable person handle. IDs are assigned monotonically and never reused.
type ID int

type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

// =============================================================================
// LINKS
// =============================================================================

type LinkState uint8

const (
	LinkUnassigned LinkState = iota // relations not built yet
	LinkNone                        // built, and there is no supervisor
	LinkSet                         // built, points at ID
)

// Link is a nullable reference to another person.
type Link struct {
	ID    ID
	State LinkState
}

// Get returns the target and whether one exists.
func (l Link) Get() (ID, bool) {
	return l.ID, l.State == LinkSet
}

func linkTo(id ID) Link { return Link{ID: id, State: LinkSet} }

var noLink = Link{State: LinkNone}

// =============================================================================
// PROBABILITIES
// =============================================================================

// Probabilities holds one probability per behavior plus the recording
// accuracy and the efficacy level.
type Probabilities struct {
	Presence            float64 `json:"presence"`
	Idea                float64 `json:"idea"`
	Lapse               float64 `json:"lapse"`
	Feat                float64 `json:"feat"`
	Slip                float64 `json:"slip"`
	Teamwork            float64 `json:"teamwork"`
	Disruption          float64 `json:"disruption"`
	Sacrifice           float64 `json:"sacrifice"`
	Sabotage            float64 `json:"sabotage"`
	RecordingAccurately float64 `json:"recording_accurately"`
	Efficacy            float64 `json:"efficacy"`
}

// =============================================================================
// PERSON
// =============================================================================

type Person struct {
	ID        ID
	Sex       Sex
	FirstName string
	LastName  string
	Age       int
	Workstyle Workstyle

	Traits  Traits
	MngrCap float64
	WrkrCap float64

	Base     Probabilities
	Modified Probabilities

	Role   *org.Role
	Shift  *org.Shift
	Team   *org.Team
	Sphere *org.Sphere

	Supervisor   Link
	Colleagues   []ID
	Subordinates []ID

	Separated    bool
	HiredDay     int
	SeparatedDay int
	DaysAttended int

	History *History
}

// FullName returns "First Last".
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// ResetModifiers restores the daily probabilities to their base values.
func (p *Person) ResetModifiers() {
	p.Modified = p.Base
}

// IsActive reports whether the person is still employed.
func (p *Person) IsActive() bool { return !p.Separated }

// Separate flags the person as permanently inactive. The record is retained.
func (p *Person) Separate(day int) {
	p.Separated = true
	p.SeparatedDay = day
	p.Supervisor = noLink
	p.Colleagues = nil
	p.Subordinates = nil
}

// TakeSlot copies the org position of a departing person.
func (p *Person) TakeSlot(from *Person) {
	p.Role = from.Role
	p.Shift = from.Shift
	p.Team = from.Team
	p.Sphere = from.Sphere
	p.Supervisor = from.Supervisor
	p.Colleagues = append([]ID(nil), from.Colleagues...)
	p.Subordinates = append([]ID(nil), from.Subordinates...)
}

// HasRole reports whether the person holds the given role kind.
func (p *Person) HasRole(kind org.RoleKind) bool {
	return p.Role != nil && p.Role.Kind == kind
}

// =============================================================================
// RECORD - Flattened, serializable view
// =============================================================================

// Record is the persisted form of a Person (no history, no live links).
type Record struct {
	ID           ID            `json:"id"`
	Sex          Sex           `json:"sex"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Age          int           `json:"age"`
	Workstyle    Workstyle     `json:"workstyle"`
	Traits       Traits        `json:"traits"`
	MngrCap      float64       `json:"mngr_cap"`
	WrkrCap      float64       `json:"wrkr_cap"`
	Base         Probabilities `json:"base"`
	Role         string        `json:"role"`
	Shift        string        `json:"shift"`
	Team         string        `json:"team"`
	Sphere       string        `json:"sphere"`
	SupervisorID *ID           `json:"supervisor_id,omitempty"`
	Separated    bool          `json:"separated"`
	HiredDay     int           `json:"hired_day"`
	SeparatedDay int           `json:"separated_day,omitempty"`
	DaysAttended int           `json:"days_attended"`
}

// ToRecord flattens the person.
func (p *Person) ToRecord() Record {
	r := Record{
		ID:           p.ID,
		Sex:          p.Sex,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Age:          p.Age,
		Workstyle:    p.Workstyle,
		Traits:       p.Traits,
		MngrCap:      p.MngrCap,
		WrkrCap:      p.WrkrCap,
		Base:         p.Base,
		Role:         p.Role.String(),
		Shift:        p.Shift.String(),
		Team:         p.Team.String(),
		Sphere:       p.Sphere.String(),
		Separated:    p.Separated,
		HiredDay:     p.HiredDay,
		SeparatedDay: p.SeparatedDay,
		DaysAttended: p.DaysAttended,
	}
	if id, ok := p.Supervisor.Get(); ok {
		r.SupervisorID = &id
	}
	return r
}
