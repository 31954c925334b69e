package router

import (
	"hotelbooking/internal/handlers/auth"
	"hotelbooking/internal/handlers/availability"
	"hotelbooking/internal/handlers/hotel"
	"hotelbooking/internal/handlers/reservation"
	"hotelbooking/internal/handlers/room"
	"hotelbooking/internal/handlers/view"
	"hotelbooking/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Hotel        hotel.Handler
	Room         room.Handler
	Availability availability.Handler
	Reservation  reservation.Handler
	View         view.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts the versioned API. Every route passes API key, auth and
// RBAC checks driven by permissions.json.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.View.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
