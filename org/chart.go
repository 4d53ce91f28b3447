/*
Package org holds the immutable organizational registries of the factory.

PURPOSE:
  Roles, Shifts, Teams and Spheres are created once per run and never
  change. Persons hold pointers to these singletons; the registries here
  know nothing about persons (see personnel/assignment.go for placement).

STRUCTURE:
  1 Production Director
  3 Shifts, each with 1 Shift Manager
  T Teams per shift, each with 1 Team Leader and L Laborers

  Teams carry a Sphere (work discipline) assigned round-robin, so with
  T=4 each shift has one team per sphere.

SEE ALSO:
  - personnel/assignment.go: Rank-then-bucket-fill placement
  - personnel/relations.go: Supervisor / colleague / subordinate edges
*/
package org

import "fmt"

// =============================================================================
// ROLES
// =============================================================================

type RoleKind string

const (
	RoleDirector     RoleKind = "Production Director"
	RoleShiftManager RoleKind = "Shift Manager"
	RoleTeamLeader   RoleKind = "Team Leader"
	RoleLaborer      RoleKind = "Laborer"
)

// Role is a position in the hierarchy. Rank 0 is the top.
type Role struct {
	Kind RoleKind
	Rank int
}

func (r *Role) String() string {
	if r == nil {
		return ""
	}
	return string(r.Kind)
}

// IsManagement reports whether the role is exempt from turnover checks.
func (r *Role) IsManagement() bool {
	return r != nil && (r.Kind == RoleDirector || r.Kind == RoleShiftManager)
}

// =============================================================================
// SHIFTS, SPHERES, TEAMS
// =============================================================================

// Shift is one of the three daily working periods.
type Shift struct {
	Index     int
	Name      string
	StartHour int
}

func (s *Shift) String() string {
	if s == nil {
		return ""
	}
	return s.Name
}

// Sphere is a work-discipline classification.
type Sphere struct {
	Name string
}

func (s *Sphere) String() string {
	if s == nil {
		return ""
	}
	return s.Name
}

// Team belongs to exactly one Shift and one Sphere.
type Team struct {
	Index  int // global index, 0..3T-1
	Name   string
	Shift  *Shift
	Sphere *Sphere
}

func (t *Team) String() string {
	if t == nil {
		return ""
	}
	return t.Name
}

// ShiftNames and their start hours, in shift order.
var shiftDefs = []struct {
	name  string
	start int
}{
	{"Early", 6},
	{"Late", 14},
	{"Night", 22},
}

// SphereNames are the production spheres assigned to teams.
var SphereNames = []string{"Manufacturing", "Logistics", "Quality Control", "Maintenance"}

// AdministrationSphere is the sphere carried by the Director and Shift Managers.
const AdministrationSphere = "Administration"

// NumShifts is fixed by the plant layout.
const NumShifts = 3

// =============================================================================
// CHART - All registries for one run
// =============================================================================

// Chart is the singleton registry of roles, shifts, teams and spheres.
type Chart struct {
	Director     *Role
	ShiftManager *Role
	TeamLeader   *Role
	Laborer      *Role

	Shifts  []*Shift
	Teams   []*Team
	Spheres []*Sphere
	Admin   *Sphere

	TeamsPerShift   int
	LaborersPerTeam int
}

// NewChart builds the registries for teamsPerShift teams per shift.
func NewChart(teamsPerShift, laborersPerTeam int) *Chart {
	c := &Chart{
		Director:        &Role{Kind: RoleDirector, Rank: 0},
		ShiftManager:    &Role{Kind: RoleShiftManager, Rank: 1},
		TeamLeader:      &Role{Kind: RoleTeamLeader, Rank: 2},
		Laborer:         &Role{Kind: RoleLaborer, Rank: 3},
		Admin:           &Sphere{Name: AdministrationSphere},
		TeamsPerShift:   teamsPerShift,
		LaborersPerTeam: laborersPerTeam,
	}
	for _, name := range SphereNames {
		c.Spheres = append(c.Spheres, &Sphere{Name: name})
	}
	for i, def := range shiftDefs {
		c.Shifts = append(c.Shifts, &Shift{Index: i, Name: def.name, StartHour: def.start})
	}
	for s, shift := range c.Shifts {
		for t := 0; t < teamsPerShift; t++ {
			idx := s*teamsPerShift + t
			c.Teams = append(c.Teams, &Team{
				Index:  idx,
				Name:   fmt.Sprintf("%s-%d", shift.Name, t+1),
				Shift:  shift,
				Sphere: c.Spheres[t%len(c.Spheres)],
			})
		}
	}
	return c
}

// Roles returns all roles, top first.
func (c *Chart) Roles() []*Role {
	return []*Role{c.Director, c.ShiftManager, c.TeamLeader, c.Laborer}
}

// TeamsOf returns the teams belonging to a shift.
func (c *Chart) TeamsOf(shift *Shift) []*Team {
	var out []*Team
	for _, t := range c.Teams {
		if t.Shift == shift {
			out = append(out, t)
		}
	}
	return out
}

// PopulationSize returns (L+1)×T×3 + 4: director, managers, leaders, laborers.
func PopulationSize(laborersPerTeam, teamsPerShift int) int {
	return (laborersPerTeam+1)*teamsPerShift*NumShifts + 1 + NumShifts
}
