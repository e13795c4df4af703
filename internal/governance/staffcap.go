// Package governance holds invariants that gate administrative changes.
package governance

import (
	"fmt"

	"serviceheft/pkg/domain"
	dErrors "serviceheft/pkg/domain-errors"
)

// StaffChange proposes adding staff seats to a VIP business account.
type StaffChange struct {
	CurrentStaffCount int
	AddStaffCount     int
	MaxStaffAllowed   int
}

// AssertVIPBusinessStaffApproval allows the change only for a super-admin and
// only when the resulting staff count stays within the cap. It holds no state;
// the caller persists the new count.
func AssertVIPBusinessStaffApproval(subject domain.Subject, change StaffChange) error {
	if !subject.IsSuperAdminClaim() {
		return dErrors.New(dErrors.CodeForbidden, "vip business staff approval requires a super admin")
	}
	switch {
	case change.MaxStaffAllowed <= 0:
		return dErrors.New(dErrors.CodeBadRequest, "max staff allowed must be positive")
	case change.CurrentStaffCount < 0:
		return dErrors.New(dErrors.CodeBadRequest, "current staff count must not be negative")
	case change.AddStaffCount <= 0:
		return dErrors.New(dErrors.CodeBadRequest, "staff to add must be positive")
	// max > 0 and current >= 0 here, so the subtraction cannot overflow.
	case change.AddStaffCount > change.MaxStaffAllowed-change.CurrentStaffCount:
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf(
			"staff cap exceeded: %d + %d > %d",
			change.CurrentStaffCount, change.AddStaffCount, change.MaxStaffAllowed,
		))
	}
	return nil
}
