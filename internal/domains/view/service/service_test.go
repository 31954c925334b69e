package service_test

import (
	"context"
	"net/http"
	"testing"

	"hotelbooking/infras/otel/mocks"
	"hotelbooking/internal/domains/view/model"
	"hotelbooking/internal/domains/view/service"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRole(r role.Role) context.Context {
	if r == role.Unauthenticated {
		return context.Background()
	}

	return session.WithSession(context.Background(), session.Session{UserID: "user-1", Role: r})
}

func TestDispatch(t *testing.T) {
	svc := service.New(mocks.NewOtel())

	t.Run("render for the required role", func(t *testing.T) {
		res, err := svc.Dispatch(withRole(role.Agent), model.ViewHotelManagement)
		require.NoError(t, err)
		assert.Equal(t, model.ActionRender, res.Action)
		assert.Equal(t, "agent", res.Role)
	})

	t.Run("anonymous goes to login", func(t *testing.T) {
		res, err := svc.Dispatch(withRole(role.Unauthenticated), model.ViewMyBookings)
		require.NoError(t, err)
		assert.Equal(t, model.ActionRedirect, res.Action)
		assert.Equal(t, model.ViewLogin, res.RedirectTo)
	})

	t.Run("wrong role goes to its default view", func(t *testing.T) {
		res, err := svc.Dispatch(withRole(role.Traveler), model.ViewAgentDashboard)
		require.NoError(t, err)
		assert.Equal(t, model.ActionRedirect, res.Action)
		assert.Equal(t, model.ViewSearch, res.RedirectTo)
	})

	t.Run("search is open to guests", func(t *testing.T) {
		res, err := svc.Dispatch(withRole(role.Unauthenticated), model.ViewSearch)
		require.NoError(t, err)
		assert.Equal(t, model.ActionRender, res.Action)
	})

	t.Run("hotel detail needs a session", func(t *testing.T) {
		res, err := svc.Dispatch(withRole(role.Unauthenticated), model.ViewHotelDetail)
		require.NoError(t, err)
		assert.Equal(t, model.ActionRedirect, res.Action)
		assert.Equal(t, model.ViewLogin, res.RedirectTo)

		res, err = svc.Dispatch(withRole(role.Agent), model.ViewHotelDetail)
		require.NoError(t, err)
		assert.Equal(t, model.ActionRender, res.Action)
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := svc.Dispatch(withRole(role.Traveler), "admin")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestNavigation(t *testing.T) {
	svc := service.New(mocks.NewOtel())

	res := svc.Navigation(withRole(role.Traveler))
	assert.Equal(t, model.ViewSearch, res.DefaultView)
	require.Len(t, res.Views, len(model.Registry))

	allowed := map[string]bool{}
	for _, v := range res.Views {
		allowed[v.Name] = v.Allowed
	}

	assert.True(t, allowed[model.ViewBooking])
	assert.True(t, allowed[model.ViewHome])
	assert.True(t, allowed[model.ViewHotelDetail])
	assert.False(t, allowed[model.ViewHotelManagement])
}

func TestDispatch_TracesErrors(t *testing.T) {
	recorder := mocks.NewRecorder()
	svc := service.New(recorder)

	_, err := svc.Dispatch(withRole(role.Traveler), "no-such-view")
	require.Error(t, err)

	traced := recorder.Errors("service.Dispatch")
	require.Len(t, traced, 1)
	assert.ErrorIs(t, traced[0], err)

	_, err = svc.Dispatch(withRole(role.Traveler), model.ViewSearch)
	require.NoError(t, err)
	assert.Len(t, recorder.Errors("service.Dispatch"), 1)
}
