package domain

import dErrors "serviceheft/pkg/domain-errors"

// Role is the closed set of platform roles.
// Invariant: the value must be one of the constants below.
//
// Usage: construct via ParseRole at trust boundaries; direct casting bypasses
// validation.
type Role string

const (
	RolePublic    Role = "public"
	RoleUser      Role = "user"
	RoleVIP       Role = "vip"
	RoleDealer    Role = "dealer"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// validRoles is the single source of truth for valid roles.
var validRoles = map[Role]bool{
	RolePublic:    true,
	RoleUser:      true,
	RoleVIP:       true,
	RoleDealer:    true,
	RoleModerator: true,
	RoleAdmin:     true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

// IsValid checks if the role is one of the supported enum values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// AllRoles returns every supported role in privilege order.
func AllRoles() []Role {
	return []Role{RolePublic, RoleUser, RoleVIP, RoleDealer, RoleModerator, RoleAdmin}
}
