/*
relations.go - Supervisor, colleague and subordinate edges

PURPOSE:
  Derives the relational fields of every active person from the current
  placement. Relations are never edited incrementally: whenever the org
  changes (swap, separation, onboarding) they are rebuilt from scratch.

RULES:
  Laborer       -> supervisor is the Team Leader of the same team
  Team Leader   -> supervisor is the Shift Manager of the same shift
  Shift Manager -> supervisor is the Production Director
  Director      -> no supervisor (LinkNone)

  Colleagues are active peers with the same role on the same team
  (laborers), the same shift (leaders), or the whole plant (managers).
  Subordinates are the inverse of supervisor, in registry order.

  Separated persons appear in no relation.

SEE ALSO:
  - assignment.go: Placement these edges are derived from
  - registry.go: SupervisorOf resolves the Link
*/
package personnel

import (
	"github.com/warp/workforce-sim/org"
)

// heads indexes the single head of each org unit.
type heads struct {
	director *Person
	managers []*Person // by shift index
	leaders  []*Person // by team index
}

func findHeads(reg *Registry, chart *org.Chart) (*heads, error) {
	h := &heads{
		managers: make([]*Person, len(chart.Shifts)),
		leaders:  make([]*Person, len(chart.Teams)),
	}
	for _, p := range reg.Active() {
		switch {
		case p.HasRole(org.RoleDirector):
			if h.director != nil {
				return nil, &OrgIntegrityError{Scope: "plant", Role: "production directors", Expected: 1, Found: 2}
			}
			h.director = p
		case p.HasRole(org.RoleShiftManager) && p.Shift != nil:
			if h.managers[p.Shift.Index] != nil {
				return nil, &OrgIntegrityError{Scope: "shift " + p.Shift.Name, Role: "shift managers", Expected: 1, Found: 2}
			}
			h.managers[p.Shift.Index] = p
		case p.HasRole(org.RoleTeamLeader) && p.Team != nil:
			if h.leaders[p.Team.Index] != nil {
				return nil, &OrgIntegrityError{Scope: "team " + p.Team.Name, Role: "team leaders", Expected: 1, Found: 2}
			}
			h.leaders[p.Team.Index] = p
		}
	}
	if h.director == nil {
		return nil, &OrgIntegrityError{Scope: "plant", Role: "production directors", Expected: 1, Found: 0}
	}
	for i, m := range h.managers {
		if m == nil {
			return nil, &OrgIntegrityError{Scope: "shift " + chart.Shifts[i].Name, Role: "shift managers", Expected: 1, Found: 0}
		}
	}
	for i, l := range h.leaders {
		if l == nil {
			return nil, &OrgIntegrityError{Scope: "team " + chart.Teams[i].Name, Role: "team leaders", Expected: 1, Found: 0}
		}
	}
	return h, nil
}

// supervisorLink returns the link a person's role implies.
func (h *heads) supervisorLink(p *Person) Link {
	switch {
	case p.HasRole(org.RoleLaborer):
		return linkTo(h.leaders[p.Team.Index].ID)
	case p.HasRole(org.RoleTeamLeader):
		return linkTo(h.managers[p.Shift.Index].ID)
	case p.HasRole(org.RoleShiftManager):
		return linkTo(h.director.ID)
	default:
		return noLink
	}
}

// peers reports whether b counts as a colleague of a.
func peers(a, b *Person) bool {
	if a == b || a.Role != b.Role {
		return false
	}
	switch {
	case a.HasRole(org.RoleLaborer):
		return a.Team == b.Team
	case a.HasRole(org.RoleTeamLeader):
		return a.Shift == b.Shift
	case a.HasRole(org.RoleShiftManager):
		return true
	default:
		return false
	}
}

// =============================================================================
// REBUILD
// =============================================================================

// RebuildRelations recomputes supervisor, colleagues and subordinates for
// every active person.
func RebuildRelations(reg *Registry, chart *org.Chart) error {
	return rebuild(reg, chart, func(*Person) bool { return true })
}

// RebuildSelectedRelations recomputes relations for the members of the given
// teams, plus the managers above them (whose subordinate lists change).
func RebuildSelectedRelations(reg *Registry, chart *org.Chart, teams []*org.Team) error {
	touchedTeam := make([]bool, len(chart.Teams))
	touchedShift := make([]bool, len(chart.Shifts))
	for _, t := range teams {
		touchedTeam[t.Index] = true
		touchedShift[t.Shift.Index] = true
	}
	return rebuild(reg, chart, func(p *Person) bool {
		if p.Team != nil {
			return touchedTeam[p.Team.Index]
		}
		return p.HasRole(org.RoleShiftManager) && touchedShift[p.Shift.Index]
	})
}

func rebuild(reg *Registry, chart *org.Chart, selected func(*Person) bool) error {
	h, err := findHeads(reg, chart)
	if err != nil {
		return err
	}
	active := reg.Active()

	for _, p := range active {
		if !selected(p) {
			continue
		}
		p.Supervisor = h.supervisorLink(p)
		p.Colleagues = p.Colleagues[:0]
		p.Subordinates = p.Subordinates[:0]
		for _, q := range active {
			if peers(p, q) {
				p.Colleagues = append(p.Colleagues, q.ID)
			}
		}
	}

	// Subordinates in registry order.
	for _, p := range active {
		sup, ok := reg.SupervisorOf(p)
		if !ok || !selected(sup) {
			continue
		}
		sup.Subordinates = append(sup.Subordinates, p.ID)
	}
	return nil
}
