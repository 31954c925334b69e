package model

import "hotelbooking/shared/role"

const (
	ViewHome             = "home"
	ViewSearch           = "search"
	ViewHotelDetail      = "hotel-detail"
	ViewBooking          = "booking"
	ViewMyBookings       = "my-bookings"
	ViewAgentDashboard   = "agent-dashboard"
	ViewHotelManagement  = "hotel-management"
	ViewReservationsList = "reservations-list"
	ViewLogin            = "login"
	ViewRegister         = "register"
)

const (
	ActionRender   = "render"
	ActionRedirect = "redirect"
)

const RequirementAuthenticated = "authenticated"

// View is a routed screen. A view with no required role and no session
// requirement is open to everyone; Session alone admits any signed-in role.
type View struct {
	Name     string
	Requires role.Role
	Session  bool
}

func (v View) Open() bool {
	return v.Requires == role.Unauthenticated && !v.Session
}

// Requirement names what the view asks of the caller: a role, "authenticated", or "".
func (v View) Requirement() string {
	if v.Requires == role.Unauthenticated && v.Session {
		return RequirementAuthenticated
	}

	return v.Requires.String()
}

// admits reports whether a signed-in role passes the gate.
func (v View) admits(current role.Role) bool {
	return v.Requires == role.Unauthenticated || v.Requires == current
}

// Registry holds every routed view in navigation order.
var Registry = []View{
	{Name: ViewHome},
	{Name: ViewSearch},
	{Name: ViewHotelDetail, Session: true},
	{Name: ViewBooking, Requires: role.Traveler},
	{Name: ViewMyBookings, Requires: role.Traveler},
	{Name: ViewAgentDashboard, Requires: role.Agent},
	{Name: ViewHotelManagement, Requires: role.Agent},
	{Name: ViewReservationsList, Requires: role.Agent},
	{Name: ViewLogin},
	{Name: ViewRegister},
}

func Lookup(name string) (View, bool) {
	for _, v := range Registry {
		if v.Name == name {
			return v, true
		}
	}

	return View{}, false
}

// DefaultFor is the landing view of a role.
func DefaultFor(r role.Role) string {
	switch r {
	case role.Agent:
		return ViewAgentDashboard
	case role.Traveler:
		return ViewSearch
	case role.Unauthenticated:
		return ViewLogin
	default:
		return ViewLogin
	}
}

type Decision struct {
	View       string
	Action     string
	RedirectTo string
}

// Decide applies the gate for a view to the given role.
func Decide(v View, current role.Role) Decision {
	if v.Open() {
		return Decision{View: v.Name, Action: ActionRender}
	}

	switch current {
	case role.Unauthenticated:
		return Decision{View: v.Name, Action: ActionRedirect, RedirectTo: ViewLogin}
	case role.Traveler, role.Agent:
		if v.admits(current) {
			return Decision{View: v.Name, Action: ActionRender}
		}

		return Decision{View: v.Name, Action: ActionRedirect, RedirectTo: DefaultFor(current)}
	default:
		return Decision{View: v.Name, Action: ActionRedirect, RedirectTo: ViewLogin}
	}
}
