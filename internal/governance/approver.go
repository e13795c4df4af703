package governance

import (
	"context"

	"serviceheft/internal/audit"
	"serviceheft/pkg/domain"
	dErrors "serviceheft/pkg/domain-errors"
)

// Approver runs the staff cap check and records every decision in the audit
// trail, approved or not.
type Approver struct {
	publisher *audit.Publisher
}

func NewApprover(publisher *audit.Publisher) *Approver {
	return &Approver{publisher: publisher}
}

// ApproveStaff checks change for the VIP business orgID. A denied or invalid
// change is audited before its error is returned; if the audit event cannot
// be recorded the audit error wins. Anonymous callers are refused without an
// audit record since there is no actor to attribute it to.
func (a *Approver) ApproveStaff(ctx context.Context, subject domain.Subject, orgID string, change StaffChange) error {
	decision := AssertVIPBusinessStaffApproval(subject, change)
	if !subject.IsAuthenticated() {
		return decision
	}

	in := audit.EventInput{
		ActorType:  string(audit.ActorUser),
		ActorID:    subject.UserID,
		ActorRole:  string(subject.Role),
		Action:     string(audit.ActionVIPStaffApproved),
		TargetType: string(audit.TargetOrganization),
		TargetID:   orgID,
		Scope:      string(audit.ScopeOrg),
		Result:     string(audit.ResultSuccess),
		Metadata: map[string]any{
			"current_staff_count": change.CurrentStaffCount,
			"add_staff_count":     change.AddStaffCount,
			"max_staff_allowed":   change.MaxStaffAllowed,
		},
	}
	if decision != nil {
		in.Result = string(audit.ResultDenied)
		in.ReasonCode = string(reasonFor(decision, change))
	}
	if _, err := a.publisher.Emit(ctx, in); err != nil {
		return err
	}
	return decision
}

func reasonFor(decision error, change StaffChange) audit.ReasonCode {
	switch {
	case dErrors.HasCode(decision, dErrors.CodeForbidden):
		return audit.ReasonForbidden
	case change.MaxStaffAllowed > 0 && change.CurrentStaffCount >= 0 && change.AddStaffCount > 0:
		return audit.ReasonStaffCapExceeded
	default:
		return audit.ReasonInvalidInput
	}
}
