package model_test

import (
	"testing"

	"hotelbooking/internal/domains/view/model"
	"hotelbooking/shared/role"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		view       string
		role       role.Role
		action     string
		redirectTo string
	}{
		{view: model.ViewHome, role: role.Unauthenticated, action: model.ActionRender},
		{view: model.ViewLogin, role: role.Agent, action: model.ActionRender},
		{view: model.ViewBooking, role: role.Traveler, action: model.ActionRender},
		{view: model.ViewBooking, role: role.Unauthenticated, action: model.ActionRedirect, redirectTo: model.ViewLogin},
		{view: model.ViewBooking, role: role.Agent, action: model.ActionRedirect, redirectTo: model.ViewAgentDashboard},
		{view: model.ViewHotelManagement, role: role.Agent, action: model.ActionRender},
		{view: model.ViewHotelManagement, role: role.Traveler, action: model.ActionRedirect, redirectTo: model.ViewSearch},
		{view: model.ViewReservationsList, role: role.Unauthenticated, action: model.ActionRedirect, redirectTo: model.ViewLogin},
		{view: model.ViewSearch, role: role.Unauthenticated, action: model.ActionRender},
		{view: model.ViewSearch, role: role.Traveler, action: model.ActionRender},
		{view: model.ViewSearch, role: role.Agent, action: model.ActionRender},
		{view: model.ViewHotelDetail, role: role.Unauthenticated, action: model.ActionRedirect, redirectTo: model.ViewLogin},
		{view: model.ViewHotelDetail, role: role.Traveler, action: model.ActionRender},
		{view: model.ViewHotelDetail, role: role.Agent, action: model.ActionRender},
	}

	for _, tt := range tests {
		t.Run(tt.view+"/"+tt.role.String(), func(t *testing.T) {
			v, ok := model.Lookup(tt.view)
			assert.True(t, ok)

			decision := model.Decide(v, tt.role)
			assert.Equal(t, tt.view, decision.View)
			assert.Equal(t, tt.action, decision.Action)
			assert.Equal(t, tt.redirectTo, decision.RedirectTo)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := model.Lookup("admin")
	assert.False(t, ok)
}

func TestRegistry_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}

	for _, v := range model.Registry {
		assert.False(t, seen[v.Name], v.Name)
		seen[v.Name] = true
	}

	assert.Len(t, seen, 10)
}

func TestView_Requirement(t *testing.T) {
	tests := map[string]string{
		model.ViewHome:            "",
		model.ViewSearch:          "",
		model.ViewHotelDetail:     model.RequirementAuthenticated,
		model.ViewBooking:         "traveler",
		model.ViewHotelManagement: "agent",
	}

	for name, want := range tests {
		v, ok := model.Lookup(name)
		assert.True(t, ok)
		assert.Equal(t, want, v.Requirement(), name)
	}
}

func TestDefaultFor(t *testing.T) {
	assert.Equal(t, model.ViewAgentDashboard, model.DefaultFor(role.Agent))
	assert.Equal(t, model.ViewSearch, model.DefaultFor(role.Traveler))
	assert.Equal(t, model.ViewLogin, model.DefaultFor(role.Unauthenticated))
}
