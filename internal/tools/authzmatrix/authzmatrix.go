// Package authzmatrix renders the role by permission decision table for a
// given resource shape, for reviewing policy changes.
package authzmatrix

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"serviceheft/internal/authz"
	"serviceheft/pkg/domain"
)

const (
	subjectID  = "me"
	subjectOrg = "org-1"
)

// shapes maps a -shape value to the resource every permission is checked
// against.
var shapes = map[string]func() *authz.Resource{
	"none": func() *authz.Resource { return nil },
	"owned": func() *authz.Resource {
		return &authz.Resource{Type: "vehicle", ID: "r-1", OwnerUserID: subjectID}
	},
	"granted": func() *authz.Resource {
		return &authz.Resource{Type: "vehicle", ID: "r-1", OwnerUserID: "other", GrantedUserIDs: []string{subjectID}}
	},
	"org": func() *authz.Resource {
		return &authz.Resource{Type: "vehicle", ID: "r-1", OwnerUserID: "other", OrgID: subjectOrg}
	},
	"foreign": func() *authz.Resource {
		return &authz.Resource{Type: "vehicle", ID: "r-1", OwnerUserID: "other", OrgID: "org-2"}
	},
	"vip-image": func() *authz.Resource {
		return &authz.Resource{Type: "image", ID: "img-1", OwnerUserID: "other", VIPOnlyImage: true}
	},
}

// Shapes returns the supported -shape values, sorted.
func Shapes() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Config holds the matrix options.
type Config struct {
	Shape      string
	SuperAdmin bool
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Shape: "none"}
	fs.StringVar(&cfg.Shape, "shape", cfg.Shape, "resource shape: "+strings.Join(Shapes(), "|"))
	fs.BoolVar(&cfg.SuperAdmin, "superadmin", false, "evaluate admin as a super admin")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if _, ok := shapes[cfg.Shape]; !ok {
		return Config{}, fmt.Errorf("unknown shape %q", cfg.Shape)
	}
	return cfg, nil
}

// Matrix evaluates every permission for every role. Rows follow
// authz.AllPermissions and columns follow domain.AllRoles.
func Matrix(cfg Config) (map[authz.Permission]map[domain.Role]bool, error) {
	newResource, ok := shapes[cfg.Shape]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", cfg.Shape)
	}
	out := make(map[authz.Permission]map[domain.Role]bool)
	for _, p := range authz.AllPermissions() {
		row := make(map[domain.Role]bool)
		for _, role := range domain.AllRoles() {
			row[role] = authz.Can(subjectFor(role, cfg.SuperAdmin), p, newResource())
		}
		out[p] = row
	}
	return out, nil
}

// Run writes the matrix as an aligned table.
func Run(cfg Config, out io.Writer) error {
	matrix, err := Matrix(cfg)
	if err != nil {
		return err
	}
	roles := domain.AllRoles()

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"PERMISSION"}
	for _, r := range roles {
		header = append(header, strings.ToUpper(r.String()))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, p := range authz.AllPermissions() {
		cells := []string{p.String()}
		for _, r := range roles {
			cells = append(cells, decision(matrix[p][r]))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// subjectFor builds the evaluated subject. The public column is the
// anonymous visitor.
func subjectFor(role domain.Role, superAdmin bool) domain.Subject {
	if role == domain.RolePublic {
		return domain.Anonymous()
	}
	return domain.Subject{
		UserID:       subjectID,
		Role:         role,
		OrgID:        subjectOrg,
		IsSuperAdmin: superAdmin && role == domain.RoleAdmin,
	}
}

func decision(allowed bool) string {
	if allowed {
		return "allow"
	}
	return "-"
}
