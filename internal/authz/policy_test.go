package authz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"serviceheft/pkg/domain"
	dErrors "serviceheft/pkg/domain-errors"
)

const (
	me       = "user-me"
	other    = "user-other"
	myOrg    = "org-mine"
	theirOrg = "org-theirs"
)

func subject(role domain.Role) domain.Subject {
	return domain.Subject{UserID: me, Role: role, OrgID: myOrg}
}

func owned() *Resource { return &Resource{Type: "vehicle", ID: "v1", OwnerUserID: me} }
func foreign() *Resource { return &Resource{Type: "vehicle", ID: "v2", OwnerUserID: other, OrgID: theirOrg} }
func userGrant() *Resource { return &Resource{Type: "vehicle", ID: "v3", OwnerUserID: other, GrantedUserIDs: []string{me}} }
func orgGrant() *Resource { return &Resource{Type: "vehicle", ID: "v4", OwnerUserID: other, GrantedOrgIDs: []string{myOrg}} }
func orgBound() *Resource { return &Resource{Type: "vehicle", ID: "v5", OwnerUserID: other, OrgID: myOrg} }
func vipImage() *Resource { return &Resource{Type: "image", ID: "i1", OwnerUserID: other, VIPOnlyImage: true} }
func regularImg() *Resource { return &Resource{Type: "image", ID: "i2", OwnerUserID: other} }

func TestCan_AlwaysPublic(t *testing.T) {
	public := []Permission{PermPublicQROpen, PermPublicQRViewIndicators, PermBlogRead}
	subjects := []domain.Subject{
		domain.Anonymous(),
		{Role: domain.RoleModerator},
		subject(domain.RoleUser),
		subject(domain.RoleModerator),
		{Role: domain.Role("ghost")},
	}
	for _, p := range public {
		for _, s := range subjects {
			assert.True(t, Can(s, p, nil), "%s as %+v", p, s)
		}
	}
}

func TestCan_ModeratorCarveOut(t *testing.T) {
	mod := subject(domain.RoleModerator)

	t.Run("blog write and delete when authenticated", func(t *testing.T) {
		assert.True(t, Can(mod, PermBlogWrite, nil))
		assert.True(t, Can(mod, PermBlogDeleteOwn, nil))
	})

	t.Run("blog write denied when anonymous", func(t *testing.T) {
		anon := domain.Subject{Role: domain.RoleModerator}
		assert.False(t, Can(anon, PermBlogWrite, nil))
		assert.False(t, Can(anon, PermBlogDeleteOwn, nil))
	})

	t.Run("everything else denied even with ownership or super admin flag", func(t *testing.T) {
		superMod := mod
		superMod.IsSuperAdmin = true
		for _, p := range AllPermissions() {
			if publicPermissions[p] || moderatorPermissions[p] {
				continue
			}
			assert.False(t, Can(mod, p, owned()), p)
			assert.False(t, Can(superMod, p, owned()), p)
		}
		assert.False(t, Can(mod, PermVehicleCreate, nil))
	})
}

func TestCan_AuthenticationGate(t *testing.T) {
	for _, role := range domain.AllRoles() {
		anon := domain.Subject{Role: role, OrgID: myOrg, IsSuperAdmin: true}
		for _, p := range AllPermissions() {
			if publicPermissions[p] {
				continue
			}
			assert.False(t, Can(anon, p, &Resource{OwnerUserID: ""}), "%s %s", role, p)
		}
	}
}

func TestCan_AdminEscalation(t *testing.T) {
	admin := subject(domain.RoleAdmin)
	superAdmin := admin
	superAdmin.IsSuperAdmin = true

	for _, p := range AllPermissions() {
		if p == PermExportFull {
			continue
		}
		assert.True(t, Can(admin, p, nil), p)
		assert.True(t, Can(admin, p, foreign()), p)
	}

	assert.False(t, Can(admin, PermExportFull, nil))
	assert.True(t, Can(superAdmin, PermExportFull, nil))
}

func TestCan_UnknownPermissionDenied(t *testing.T) {
	superAdmin := domain.Subject{UserID: me, Role: domain.RoleAdmin, IsSuperAdmin: true}
	for _, p := range []Permission{"", "admin.*", "vehicle.delete.any", "BLOG.READ", "blog.read "} {
		assert.False(t, Can(superAdmin, p, owned()), "%q", p)
		assert.False(t, Can(domain.Anonymous(), p, nil), "%q", p)
	}
}

func TestCan_RolesOutsideTableDenied(t *testing.T) {
	for _, role := range []domain.Role{domain.RolePublic, domain.Role("ghost"), domain.Role("")} {
		s := subject(role)
		for _, p := range AllPermissions() {
			if publicPermissions[p] {
				continue
			}
			assert.False(t, Can(s, p, owned()), "%s %s", role, p)
		}
	}
}

func TestCan_RuleTable(t *testing.T) {
	type row struct {
		perm     Permission
		resource func() *Resource
		user     bool
		vip      bool
		dealer   bool
	}
	none := func() *Resource { return nil }

	rows := []row{
		{PermVehicleCreate, none, true, true, true},

		{PermVehicleReadOwn, owned, true, true, true},
		{PermVehicleReadOwn, foreign, false, false, false},
		{PermVehicleReadOwn, userGrant, false, false, false},
		{PermVehicleReadOwn, none, false, false, false},

		{PermVehicleReadGranted, owned, true, true, true},
		{PermVehicleReadGranted, userGrant, true, true, true},
		{PermVehicleReadGranted, orgGrant, true, true, true},
		{PermVehicleReadGranted, orgBound, false, false, true},
		{PermVehicleReadGranted, foreign, false, false, false},
		{PermVehicleReadGranted, none, false, false, false},

		{PermVehicleReadAny, owned, false, false, false},

		{PermEntryCreateOwn, owned, true, true, true},
		{PermEntryCreateOwn, userGrant, false, false, false},
		{PermEntryUpdateOwn, owned, true, true, true},
		{PermEntryUpdateOwn, orgBound, false, false, false},
		{PermEntryDeleteOwn, owned, true, true, true},
		{PermEntryDeleteOwn, foreign, false, false, false},

		{PermDocumentUploadOwn, owned, true, true, true},
		{PermDocumentUploadOwn, userGrant, false, false, false},
		{PermDocumentMetaReadOwn, owned, true, true, true},
		{PermDocumentMetaReadOwn, foreign, false, false, false},
		{PermDocumentContentReadOwn, owned, true, true, true},
		{PermDocumentContentReadOwn, orgGrant, false, false, false},

		{PermDocumentMetaReadGranted, userGrant, true, true, true},
		{PermDocumentMetaReadGranted, orgBound, false, false, true},
		{PermDocumentMetaReadGranted, foreign, false, false, false},
		{PermDocumentContentReadGranted, orgGrant, true, true, true},
		{PermDocumentContentReadGranted, foreign, false, false, false},

		{PermDocumentContentReadAny, userGrant, false, true, true},
		{PermDocumentContentReadAny, owned, false, true, true},
		{PermDocumentContentReadAny, orgBound, false, false, true},
		{PermDocumentContentReadAny, foreign, false, false, false},
		{PermDocumentContentReadAny, none, false, false, false},

		{PermImageVIPOnlyView, regularImg, true, true, true},
		{PermImageVIPOnlyView, none, true, true, true},
		{PermImageVIPOnlyView, vipImage, false, true, true},

		{PermTransferGenerate, owned, false, true, true},
		{PermSaleInternalStart, owned, false, true, true},

		{PermAuditReadOwn, owned, true, true, true},
		{PermAuditReadOwn, userGrant, false, false, false},
		{PermAuditReadAny, owned, false, false, false},

		{PermNewsletterSubscriptionManageOwn, none, true, true, true},
		{PermNewsletterSend, none, false, false, false},

		{PermAdminUsersManage, owned, false, false, false},
		{PermAdminRolesAssign, owned, false, false, false},
		{PermAdminVIPBusinessApprove, owned, false, false, false},
		{PermAdminContentModerate, owned, false, false, false},

		{PermExportRedacted, none, true, true, true},
		{PermExportFull, owned, false, false, false},

		{PermBlogWrite, none, false, false, false},
		{PermBlogDeleteOwn, owned, false, false, false},
	}

	for _, tt := range rows {
		want := map[domain.Role]bool{
			domain.RoleUser:   tt.user,
			domain.RoleVIP:    tt.vip,
			domain.RoleDealer: tt.dealer,
		}
		for role, expected := range want {
			name := fmt.Sprintf("%s/%s/%v", tt.perm, role, tt.resource())
			t.Run(name, func(t *testing.T) {
				assert.Equal(t, expected, Can(subject(role), tt.perm, tt.resource()))
			})
		}
	}
}

// TestRuleTable_CoversEveryPermission keeps the table exhaustive: every
// permission is either always-public, moderator-only, or has a table row.
func TestRuleTable_CoversEveryPermission(t *testing.T) {
	for _, p := range AllPermissions() {
		_, inTable := rules[p]
		assert.True(t, publicPermissions[p] || moderatorPermissions[p] || inTable, p)
	}
	for p := range rules {
		assert.True(t, p.IsKnown(), p)
	}
}

func TestIsGranted(t *testing.T) {
	t.Run("dealer without org gets no implicit org access", func(t *testing.T) {
		s := domain.Subject{UserID: me, Role: domain.RoleDealer}
		assert.False(t, IsGranted(s, &Resource{OwnerUserID: other}))
	})

	t.Run("empty org grant list entry does not match subject without org", func(t *testing.T) {
		s := domain.Subject{UserID: me, Role: domain.RoleUser}
		assert.False(t, IsGranted(s, &Resource{OwnerUserID: other, GrantedOrgIDs: []string{""}}))
	})

	t.Run("anonymous never owns an ownerless resource", func(t *testing.T) {
		assert.False(t, IsOwner(domain.Anonymous(), &Resource{}))
	})
}

func TestSpecExamples(t *testing.T) {
	assert.False(t, Can(subject(domain.RoleModerator), PermVehicleCreate, nil))
	assert.True(t, Can(subject(domain.RoleModerator), PermBlogWrite, nil))
	assert.True(t, Can(subject(domain.RoleUser), PermVehicleReadOwn, &Resource{OwnerUserID: me}))
	assert.False(t, Can(subject(domain.RoleUser), PermVehicleReadOwn, &Resource{OwnerUserID: other}))
	assert.True(t, Can(subject(domain.RoleVIP), PermDocumentContentReadAny, &Resource{GrantedUserIDs: []string{me}}))
	assert.False(t, Can(subject(domain.RoleUser), PermDocumentContentReadAny, &Resource{GrantedUserIDs: []string{me}}))
	assert.False(t, Can(domain.Subject{UserID: me, Role: domain.RoleAdmin}, PermExportFull, nil))
	assert.True(t, Can(domain.Subject{UserID: me, Role: domain.RoleAdmin, IsSuperAdmin: true}, PermExportFull, nil))
}

func TestAssertCan(t *testing.T) {
	t.Run("allowed returns nil", func(t *testing.T) {
		err := AssertCan(Input{Subject: subject(domain.RoleUser), Permission: PermVehicleCreate})
		require.NoError(t, err)
	})

	t.Run("anonymous denial is unauthorized", func(t *testing.T) {
		err := AssertCan(Input{Subject: domain.Anonymous(), Permission: PermVehicleCreate})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("authenticated denial is forbidden", func(t *testing.T) {
		err := AssertCan(Input{Subject: subject(domain.RoleUser), Permission: PermVehicleReadOwn, Resource: foreign()})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("anonymous moderator denial is unauthorized", func(t *testing.T) {
		err := AssertCan(Input{Subject: domain.Subject{Role: domain.RoleModerator}, Permission: PermBlogWrite})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestParsePermission(t *testing.T) {
	for _, p := range AllPermissions() {
		parsed, err := ParsePermission(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParsePermission("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	_, err = ParsePermission("vehicle.delete")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestCan_ConcurrentCallers(t *testing.T) {
	g, _ := errgroup.WithContext(context.Background())
	for i := range 32 {
		g.Go(func() error {
			s := subject(domain.AllRoles()[i%len(domain.AllRoles())])
			for _, p := range AllPermissions() {
				first := Can(s, p, userGrant())
				if Can(s, p, userGrant()) != first {
					return fmt.Errorf("non-deterministic decision for %s", p)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
