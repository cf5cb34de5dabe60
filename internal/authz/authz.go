// Package authz decides whether a principal may perform an administrative
// action. Principals are role sets and every action maps to a role policy
package authz

import (
	"errors"

	"travel_api/internal/domain"
)

var (
	// ErrUnauthenticated is returned when no principal is present
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the principal lacks the required roles
	ErrForbidden = errors.New("forbidden")
)

// Action names a protected operation
type Action string

const (
	CreateTravel Action = "travel.create"
	UpdateTravel Action = "travel.update"
	CreateTour   Action = "tour.create"
	UpdateTour   Action = "tour.update"
)

// Principal is an authenticated caller and the role names it holds
type Principal struct {
	UserID uint
	Roles  map[string]struct{}
}

// NewPrincipal builds a principal from a list of role names
func NewPrincipal(userID uint, roles ...string) *Principal {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return &Principal{UserID: userID, Roles: set}
}

// Has reports whether the principal holds role
func (p *Principal) Has(role string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Roles[role]
	return ok
}

// Policy is a predicate over a principal's roles
type Policy func(p *Principal) bool

// AnyOf is satisfied when the principal holds at least one of roles
func AnyOf(roles ...string) Policy {
	return func(p *Principal) bool {
		for _, r := range roles {
			if p.Has(r) {
				return true
			}
		}
		return false
	}
}

// AllOf is satisfied when the principal holds every one of roles
func AllOf(roles ...string) Policy {
	return func(p *Principal) bool {
		for _, r := range roles {
			if !p.Has(r) {
				return false
			}
		}
		return true
	}
}

// Only admins create; editors may also update
var policies = map[Action]Policy{
	CreateTravel: AnyOf(domain.RoleAdmin),
	CreateTour:   AnyOf(domain.RoleAdmin),
	UpdateTravel: AnyOf(domain.RoleAdmin, domain.RoleEditor),
	UpdateTour:   AnyOf(domain.RoleAdmin, domain.RoleEditor),
}

// Authorize returns nil when p may perform action. Unknown actions are denied
func Authorize(p *Principal, action Action) error {
	if p == nil {
		return ErrUnauthenticated
	}
	policy, ok := policies[action]
	if !ok || !policy(p) {
		return ErrForbidden
	}
	return nil
}
