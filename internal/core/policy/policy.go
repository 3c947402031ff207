// Package policy is the authorization decision engine. Policies are attached
// to routes as static configuration; the decision functions are pure over the
// principal and the policy, so handlers and middleware evaluate them
// uniformly with no shared state.
package policy

import "github.com/plasturgie/learning-platform/internal/core/domain"

// Kind enumerates the route policy variants.
type Kind int

const (
	// KindPublic always allows, authenticated or not.
	KindPublic Kind = iota
	// KindAuthenticated allows any request carrying a valid principal.
	KindAuthenticated
	// KindRoleAnyOf allows principals whose role is in the policy's role set.
	KindRoleAnyOf
	// KindOwnerOrRole allows principals whose role is in the role set, or
	// who own the target resource. The role half is decided up front; the
	// ownership half needs a resource fetch and is decided by the handler
	// via Owner.
	KindOwnerOrRole
)

// Policy is a static authorization rule for one route.
type Policy struct {
	Kind  Kind
	Roles []string
}

// Public returns the always-allow policy.
func Public() Policy { return Policy{Kind: KindPublic} }

// Authenticated returns the any-valid-principal policy.
func Authenticated() Policy { return Policy{Kind: KindAuthenticated} }

// RoleAnyOf returns a policy allowing only the given roles.
func RoleAnyOf(roles ...string) Policy {
	return Policy{Kind: KindRoleAnyOf, Roles: roles}
}

// OwnerOrRole returns a policy allowing the given roles outright and
// deferring the ownership check to the handler.
func OwnerOrRole(roles ...string) Policy {
	return Policy{Kind: KindOwnerOrRole, Roles: roles}
}

// Authorize decides whether the principal may pass the policy's up-front
// check. A missing principal yields domain.ErrUnauthorized (401); a present
// principal with the wrong role yields domain.ErrForbidden (403). The two
// are distinct failure classes and must never be conflated.
//
// For OwnerOrRole only presence is required here: a principal that fails the
// role half may still own the resource, which the handler decides after its
// fetch using Owner.
func Authorize(p *domain.Principal, pol Policy) error {
	switch pol.Kind {
	case KindPublic:
		return nil
	case KindAuthenticated:
		if p == nil {
			return domain.ErrUnauthorized
		}
		return nil
	case KindRoleAnyOf:
		if p == nil {
			return domain.ErrUnauthorized
		}
		if !p.HasAnyRole(pol.Roles...) {
			return domain.ErrForbidden
		}
		return nil
	case KindOwnerOrRole:
		if p == nil {
			return domain.ErrUnauthorized
		}
		return nil
	default:
		// Unknown kinds deny closed.
		if p == nil {
			return domain.ErrUnauthorized
		}
		return domain.ErrForbidden
	}
}

// Owner is the ownership predicate: true when the principal is the user the
// resource belongs to.
func Owner(p *domain.Principal, ownerUserID string) bool {
	return p != nil && ownerUserID != "" && p.UserID == ownerUserID
}

// AllowOwnerOrRole is the handler-side decision for OwnerOrRole policies:
// the principal passes when its role is in roles or it owns the resource.
func AllowOwnerOrRole(p *domain.Principal, ownerUserID string, roles ...string) bool {
	return p.HasAnyRole(roles...) || Owner(p, ownerUserID)
}
