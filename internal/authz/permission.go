package authz

import dErrors "serviceheft/pkg/domain-errors"

// Permission is a fine-grained capability. The set is closed; anything not
// listed here is denied.
type Permission string

// Public QR and blog.
const (
	PermPublicQROpen           Permission = "publicQr.open"
	PermPublicQRViewIndicators Permission = "publicQr.viewIndicators"
	PermBlogRead               Permission = "blog.read"
	PermBlogWrite              Permission = "blog.write"
	PermBlogDeleteOwn          Permission = "blog.delete.own"
)

// Vehicles and service entries.
const (
	PermVehicleCreate      Permission = "vehicle.create"
	PermVehicleReadOwn     Permission = "vehicle.read.own"
	PermVehicleReadGranted Permission = "vehicle.read.granted"
	PermVehicleReadAny     Permission = "vehicle.read.any"

	PermEntryCreateOwn Permission = "entry.create.own"
	PermEntryUpdateOwn Permission = "entry.update.own"
	PermEntryDeleteOwn Permission = "entry.delete.own"
)

// Documents and images.
const (
	PermDocumentUploadOwn          Permission = "document.upload.own"
	PermDocumentMetaReadOwn        Permission = "document.meta.read.own"
	PermDocumentContentReadOwn     Permission = "document.content.read.own"
	PermDocumentMetaReadGranted    Permission = "document.meta.read.granted"
	PermDocumentContentReadGranted Permission = "document.content.read.granted"

	// PermDocumentContentReadAny is never global: it requires vip or dealer
	// plus a grant on the resource.
	PermDocumentContentReadAny Permission = "document.content.read.any"
	PermImageVIPOnlyView       Permission = "image.vipOnly.view"
)

// Transfers and sales.
const (
	PermTransferGenerate  Permission = "transfer.generate"
	PermSaleInternalStart Permission = "sale.internal.start"
)

// Audit, newsletter, admin and export.
const (
	PermAuditReadOwn Permission = "audit.read.own"
	PermAuditReadAny Permission = "audit.read.any"

	PermNewsletterSubscriptionManageOwn Permission = "newsletter.subscription.manage.own"
	PermNewsletterSend                  Permission = "newsletter.send"

	PermAdminUsersManage        Permission = "admin.users.manage"
	PermAdminRolesAssign        Permission = "admin.roles.assign"
	PermAdminVIPBusinessApprove Permission = "admin.vipBusiness.approve"
	PermAdminContentModerate    Permission = "admin.content.moderate"

	PermExportRedacted Permission = "export.redacted"
	PermExportFull     Permission = "export.full"
)

// allPermissions lists the closed set in a stable order.
var allPermissions = []Permission{
	PermPublicQROpen,
	PermPublicQRViewIndicators,
	PermBlogRead,
	PermBlogWrite,
	PermBlogDeleteOwn,
	PermVehicleCreate,
	PermVehicleReadOwn,
	PermVehicleReadGranted,
	PermVehicleReadAny,
	PermEntryCreateOwn,
	PermEntryUpdateOwn,
	PermEntryDeleteOwn,
	PermDocumentUploadOwn,
	PermDocumentMetaReadOwn,
	PermDocumentContentReadOwn,
	PermDocumentMetaReadGranted,
	PermDocumentContentReadGranted,
	PermDocumentContentReadAny,
	PermImageVIPOnlyView,
	PermTransferGenerate,
	PermSaleInternalStart,
	PermAuditReadOwn,
	PermAuditReadAny,
	PermNewsletterSubscriptionManageOwn,
	PermNewsletterSend,
	PermAdminUsersManage,
	PermAdminRolesAssign,
	PermAdminVIPBusinessApprove,
	PermAdminContentModerate,
	PermExportRedacted,
	PermExportFull,
}

var knownPermissions = func() map[Permission]bool {
	m := make(map[Permission]bool, len(allPermissions))
	for _, p := range allPermissions {
		m[p] = true
	}
	return m
}()

// AllPermissions returns a copy of the closed permission set.
func AllPermissions() []Permission {
	return append([]Permission(nil), allPermissions...)
}

// ParsePermission constructs a Permission from external input.
func ParsePermission(s string) (Permission, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "permission cannot be empty")
	}
	p := Permission(s)
	if !p.IsKnown() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown permission")
	}
	return p, nil
}

// IsKnown reports whether the permission is part of the closed set.
func (p Permission) IsKnown() bool {
	return knownPermissions[p]
}

func (p Permission) String() string {
	return string(p)
}
