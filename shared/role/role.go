// Package role holds the closed set of roles a session can carry.
package role

import (
	"fmt"

	"hotelbooking/shared/constant"
)

type Role int

const (
	Unauthenticated Role = iota
	Traveler
	Agent
)

// Parse maps a wire value onto a Role. The empty string is Unauthenticated.
func Parse(value string) (Role, error) {
	switch value {
	case constant.Empty:
		return Unauthenticated, nil
	case constant.RoleTraveler:
		return Traveler, nil
	case constant.RoleAgent:
		return Agent, nil
	default:
		return Unauthenticated, fmt.Errorf("unknown role %q", value)
	}
}

func (r Role) String() string {
	switch r {
	case Traveler:
		return constant.RoleTraveler
	case Agent:
		return constant.RoleAgent
	case Unauthenticated:
		return constant.Empty
	default:
		return constant.Empty
	}
}

func (r Role) IsValid() bool {
	switch r {
	case Unauthenticated, Traveler, Agent:
		return true
	default:
		return false
	}
}

// Assignable reports whether a user account may hold the role.
func (r Role) Assignable() bool {
	return r == Traveler || r == Agent
}
