package domain

// Subject is the actor making a request. It is resolved upstream from a
// verified session and must not be modified while the request is in flight.
//
// An empty UserID means the request is anonymous. IsSuperAdmin is a claim
// layered on RoleAdmin; it carries no meaning for any other role.
type Subject struct {
	UserID       string
	Role         Role
	OrgID        string
	IsSuperAdmin bool
}

// Anonymous returns the subject used for unauthenticated requests.
func Anonymous() Subject {
	return Subject{Role: RolePublic}
}

// IsAuthenticated reports whether the subject carries a user identity.
func (s Subject) IsAuthenticated() bool {
	return s.UserID != ""
}

// IsSuperAdminClaim reports whether the subject is an admin holding the
// super-admin claim.
func (s Subject) IsSuperAdminClaim() bool {
	return s.Role == RoleAdmin && s.IsSuperAdmin
}

// HasOrg reports whether the subject is bound to an organization.
func (s Subject) HasOrg() bool {
	return s.OrgID != ""
}
