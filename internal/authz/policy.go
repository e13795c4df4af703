// Package authz is the deny-by-default authorization decision point consulted
// before every protected operation.
//
// Can is a pure function of its inputs. Evaluation order is fixed:
//  1. always-public permissions
//  2. moderator carve-out
//  3. authentication gate
//  4. admin escalation (export.full additionally needs the super-admin claim)
//  5. the per-permission rule table for user, vip and dealer
//
// Anything not explicitly allowed along the way is denied.
package authz

import (
	"serviceheft/pkg/domain"
	dErrors "serviceheft/pkg/domain-errors"
)

// rule decides a single permission for a user, vip or dealer subject.
type rule func(s domain.Subject, r *Resource) bool

var publicPermissions = map[Permission]bool{
	PermPublicQROpen:           true,
	PermPublicQRViewIndicators: true,
	PermBlogRead:               true,
}

var moderatorPermissions = map[Permission]bool{
	PermBlogWrite:     true,
	PermBlogDeleteOwn: true,
}

// tableRoles are the roles the rule table applies to.
var tableRoles = map[domain.Role]bool{
	domain.RoleUser:   true,
	domain.RoleVIP:    true,
	domain.RoleDealer: true,
}

// rules is the allow table. A permission missing from it is denied for every
// non-admin subject.
var rules = map[Permission]rule{
	PermVehicleCreate:      always,
	PermVehicleReadOwn:     IsOwner,
	PermVehicleReadGranted: IsGranted,
	PermVehicleReadAny:     never,

	PermEntryCreateOwn: IsOwner,
	PermEntryUpdateOwn: IsOwner,
	PermEntryDeleteOwn: IsOwner,

	PermDocumentUploadOwn:          IsOwner,
	PermDocumentMetaReadOwn:        IsOwner,
	PermDocumentContentReadOwn:     IsOwner,
	PermDocumentMetaReadGranted:    IsGranted,
	PermDocumentContentReadGranted: IsGranted,
	PermDocumentContentReadAny:     all(vipOrDealer, IsGranted),

	PermImageVIPOnlyView: canViewImage,

	PermTransferGenerate:  vipOrDealer,
	PermSaleInternalStart: vipOrDealer,

	PermAuditReadOwn: IsOwner,
	PermAuditReadAny: never,

	PermNewsletterSubscriptionManageOwn: always,
	PermNewsletterSend:                  never,

	PermAdminUsersManage:        never,
	PermAdminRolesAssign:        never,
	PermAdminVIPBusinessApprove: never,
	PermAdminContentModerate:    never,

	PermExportRedacted: always,
	PermExportFull:     never,
}

// Can reports whether the subject may exercise permission on the optional
// resource. It never panics and denies anything it does not recognize.
func Can(s domain.Subject, p Permission, r *Resource) bool {
	if !p.IsKnown() {
		return false
	}
	if publicPermissions[p] {
		return true
	}
	if s.Role == domain.RoleModerator {
		return moderatorPermissions[p] && s.IsAuthenticated()
	}
	if !s.IsAuthenticated() {
		return false
	}
	if s.Role == domain.RoleAdmin {
		if p == PermExportFull {
			return s.IsSuperAdminClaim()
		}
		return true
	}
	if !tableRoles[s.Role] {
		return false
	}
	allow, ok := rules[p]
	if !ok {
		return false
	}
	return allow(s, r)
}

// Input bundles the arguments of an authorization check.
type Input struct {
	Subject    domain.Subject
	Permission Permission
	Resource   *Resource
}

// AssertCan returns nil when Can allows the input. A denial is reported as
// CodeUnauthorized for anonymous subjects and CodeForbidden otherwise.
func AssertCan(in Input) error {
	if Can(in.Subject, in.Permission, in.Resource) {
		return nil
	}
	if !in.Subject.IsAuthenticated() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return dErrors.New(dErrors.CodeForbidden, "permission denied: "+string(in.Permission))
}

func always(domain.Subject, *Resource) bool { return true }

func never(domain.Subject, *Resource) bool { return false }

func vipOrDealer(s domain.Subject, _ *Resource) bool {
	return s.Role == domain.RoleVIP || s.Role == domain.RoleDealer
}

func canViewImage(s domain.Subject, r *Resource) bool {
	if r == nil || !r.VIPOnlyImage {
		return true
	}
	return vipOrDealer(s, r)
}

func all(rs ...rule) rule {
	return func(s domain.Subject, r *Resource) bool {
		for _, allow := range rs {
			if !allow(s, r) {
				return false
			}
		}
		return true
	}
}
