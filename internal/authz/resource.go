package authz

import (
	"slices"

	"serviceheft/pkg/domain"
)

// Resource is the object an action targets. Ownership and the grant lists
// define who besides the owner may act on it.
type Resource struct {
	Type           string
	ID             string
	OwnerUserID    string
	OrgID          string
	GrantedUserIDs []string
	GrantedOrgIDs  []string
	IsDeleted      bool
	VIPOnlyImage   bool
}

// IsOwner reports whether the subject owns the resource.
func IsOwner(s domain.Subject, r *Resource) bool {
	if r == nil || !s.IsAuthenticated() {
		return false
	}
	return r.OwnerUserID == s.UserID
}

// IsGranted reports whether the subject owns the resource, holds a user or
// org grant on it, or is a dealer of the org the resource is bound to.
func IsGranted(s domain.Subject, r *Resource) bool {
	if r == nil || !s.IsAuthenticated() {
		return false
	}
	if IsOwner(s, r) {
		return true
	}
	if slices.Contains(r.GrantedUserIDs, s.UserID) {
		return true
	}
	if s.HasOrg() && slices.Contains(r.GrantedOrgIDs, s.OrgID) {
		return true
	}
	return s.Role == domain.RoleDealer && s.HasOrg() && s.OrgID == r.OrgID
}
