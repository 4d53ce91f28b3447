/*
assignment.go - Initial placement of persons into the org chart

PURPOSE:
  Places a freshly generated population into roles, shifts and teams.
  Placement follows "rank then bucket-fill":

  1. Sort by managerial capacity (MNGR_CAP), descending
  2. Top 1 becomes Production Director
  3. Next 3 become Shift Managers (shift order follows rank order)
  4. Walking the UNSORTED population (creation order), the first T×3
     unassigned persons become Team Leaders, one per team in team order
  5. Everyone else becomes a Laborer, filling each team to L in
     creation order

  Ranking only decides management. Leaders and laborers are placed by
  creation order so their traits are not correlated with their team.

VALIDATION:
  ValidateOrg checks the exactly-one relations the rest of the engine
  relies on (one director, one manager per shift, one leader per team,
  L laborers per team). A mismatch is an OrgIntegrityError, returned at
  construction time rather than surfacing later as a nil supervisor.

SEE ALSO:
  - relations.go: Edges derived from this placement
  - org/chart.go: The registries being filled
*/
package personnel

import (
	"fmt"
	"sort"

	"github.com/warp/workforce-sim/org"
)

// =============================================================================
// ROLE ASSIGNMENT
// =============================================================================

// rankByManagerialCapacity returns persons sorted by MNGR_CAP, ties by ID.
func rankByManagerialCapacity(persons []*Person) []*Person {
	ranked := make([]*Person, len(persons))
	copy(ranked, persons)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MngrCap != ranked[j].MngrCap {
			return ranked[i].MngrCap > ranked[j].MngrCap
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// AssignRoles gives every person a role.
func AssignRoles(reg *Registry, chart *org.Chart) error {
	persons := reg.All()
	want := org.PopulationSize(chart.LaborersPerTeam, chart.TeamsPerShift)
	if len(persons) != want {
		return &OrgIntegrityError{Scope: "population", Role: "persons", Expected: want, Found: len(persons)}
	}

	ranked := rankByManagerialCapacity(persons)
	ranked[0].Role = chart.Director
	for _, p := range ranked[1 : 1+org.NumShifts] {
		p.Role = chart.ShiftManager
	}

	leaders := len(chart.Teams)
	for _, p := range persons {
		if p.Role != nil {
			continue
		}
		if leaders > 0 {
			p.Role = chart.TeamLeader
			leaders--
			continue
		}
		p.Role = chart.Laborer
	}
	return nil
}

// AssignShiftsAndTeams places managers on shifts and leaders/laborers on teams.
func AssignShiftsAndTeams(reg *Registry, chart *org.Chart) error {
	persons := reg.All()

	// Managers: shift order follows rank order.
	shift := 0
	for _, p := range rankByManagerialCapacity(persons) {
		switch {
		case p.HasRole(org.RoleDirector):
			p.Sphere = chart.Admin
		case p.HasRole(org.RoleShiftManager):
			if shift >= len(chart.Shifts) {
				return &OrgIntegrityError{Scope: "plant", Role: "shift managers", Expected: len(chart.Shifts), Found: shift + 1}
			}
			p.Shift = chart.Shifts[shift]
			p.Sphere = chart.Admin
			shift++
		}
	}

	// Leaders, then laborers, in creation order.
	team := 0
	for _, p := range persons {
		if !p.HasRole(org.RoleTeamLeader) {
			continue
		}
		if team >= len(chart.Teams) {
			return &OrgIntegrityError{Scope: "plant", Role: "team leaders", Expected: len(chart.Teams), Found: team + 1}
		}
		place(p, chart.Teams[team])
		team++
	}

	filled := make([]int, len(chart.Teams))
	team = 0
	for _, p := range persons {
		if !p.HasRole(org.RoleLaborer) {
			continue
		}
		for team < len(chart.Teams) && filled[team] >= chart.LaborersPerTeam {
			team++
		}
		if team >= len(chart.Teams) {
			return &OrgIntegrityError{Scope: "plant", Role: "laborers", Expected: len(chart.Teams) * chart.LaborersPerTeam, Found: len(chart.Teams)*chart.LaborersPerTeam + 1}
		}
		place(p, chart.Teams[team])
		filled[team]++
	}
	return ValidateOrg(reg, chart)
}

func place(p *Person, t *org.Team) {
	p.Team = t
	p.Shift = t.Shift
	p.Sphere = t.Sphere
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateOrg checks the exactly-one relations among active persons.
func ValidateOrg(reg *Registry, chart *org.Chart) error {
	directors := 0
	managers := make([]int, len(chart.Shifts))
	leaders := make([]int, len(chart.Teams))
	laborers := make([]int, len(chart.Teams))

	for _, p := range reg.Active() {
		switch {
		case p.HasRole(org.RoleDirector):
			directors++
		case p.HasRole(org.RoleShiftManager):
			if p.Shift == nil {
				return &OrgIntegrityError{Scope: fmt.Sprintf("person %d", p.ID), Role: "shifts", Expected: 1, Found: 0}
			}
			managers[p.Shift.Index]++
		case p.HasRole(org.RoleTeamLeader), p.HasRole(org.RoleLaborer):
			if p.Team == nil || p.Shift != p.Team.Shift {
				return &OrgIntegrityError{Scope: fmt.Sprintf("person %d", p.ID), Role: "teams", Expected: 1, Found: 0}
			}
			if p.HasRole(org.RoleTeamLeader) {
				leaders[p.Team.Index]++
			} else {
				laborers[p.Team.Index]++
			}
		default:
			return &OrgIntegrityError{Scope: fmt.Sprintf("person %d", p.ID), Role: "roles", Expected: 1, Found: 0}
		}
	}

	if directors != 1 {
		return &OrgIntegrityError{Scope: "plant", Role: "production directors", Expected: 1, Found: directors}
	}
	for i, n := range managers {
		if n != 1 {
			return &OrgIntegrityError{Scope: "shift " + chart.Shifts[i].Name, Role: "shift managers", Expected: 1, Found: n}
		}
	}
	for i, t := range chart.Teams {
		if leaders[i] != 1 {
			return &OrgIntegrityError{Scope: "team " + t.Name, Role: "team leaders", Expected: 1, Found: leaders[i]}
		}
		if laborers[i] != chart.LaborersPerTeam {
			return &OrgIntegrityError{Scope: "team " + t.Name, Role: "laborers", Expected: chart.LaborersPerTeam, Found: laborers[i]}
		}
	}
	return nil
}

// =============================================================================
// TEAM SWAP
// =============================================================================

// SwapTeams exchanges the team placement of two laborers.
func SwapTeams(a, b *Person) {
	ta, tb := a.Team, b.Team
	place(a, tb)
	place(b, ta)
}
