package org_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-sim/org"
)

func TestNewChart(t *testing.T) {
	c := org.NewChart(2, 5)

	require.Len(t, c.Shifts, org.NumShifts)
	require.Len(t, c.Teams, 6)
	assert.Equal(t, "Early", c.Shifts[0].Name)
	assert.Equal(t, 22, c.Shifts[2].StartHour)

	for i, team := range c.Teams {
		assert.Equal(t, i, team.Index)
		assert.NotNil(t, team.Sphere)
		assert.NotEqual(t, org.AdministrationSphere, team.Sphere.Name)
	}
	assert.Equal(t, "Late-1", c.Teams[2].Name)
	assert.Len(t, c.TeamsOf(c.Shifts[1]), 2)
	assert.Equal(t, org.AdministrationSphere, c.Admin.Name)
}

func TestRoles(t *testing.T) {
	c := org.NewChart(1, 1)
	roles := c.Roles()
	require.Len(t, roles, 4)
	for i, r := range roles {
		assert.Equal(t, i, r.Rank)
	}
	assert.True(t, c.Director.IsManagement())
	assert.False(t, c.Laborer.IsManagement())
}

func TestPopulationSize(t *testing.T) {
	assert.Equal(t, 10, org.PopulationSize(1, 1))
	assert.Equal(t, 16, org.PopulationSize(3, 1))
	assert.Equal(t, 136, org.PopulationSize(10, 4))
}

func TestNilStrings(t *testing.T) {
	var team *org.Team
	var shift *org.Shift
	assert.Equal(t, "", team.String())
	assert.Equal(t, "", shift.String())
}
