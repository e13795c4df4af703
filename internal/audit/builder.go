package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"serviceheft/pkg/domain"
	dErrors "serviceheft/pkg/domain-errors"
)

const minEventIDLength = 16

// createdAtLayouts are accepted for created_at. Values without a zone are
// read as UTC.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NewEventID returns a time-ordered UUIDv7 suitable for event_id.
func NewEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Build validates a proposed record and returns its canonical form.
//
// Structural problems are rejected: every violated field adds one message
// and all of them are returned together as a CodeBadRequest error. Metadata
// is never a reason to reject; disallowed entries are dropped by
// SanitizeMetadata.
func Build(in EventInput) (Event, error) {
	var problems []string
	fail := func(msg string) { problems = append(problems, msg) }

	if !looksLikeUUID(in.EventID) {
		fail("event_id must be a UUID")
	}

	createdAt, ok := parseCreatedAt(in.CreatedAt)
	if !ok {
		fail("created_at must be an ISO-8601 timestamp")
	}

	actorType := ActorType(in.ActorType)
	if actorType != ActorUser && actorType != ActorSystem {
		fail("actor_type must be user or system")
	}

	if strings.TrimSpace(in.ActorID) == "" {
		fail("actor_id is required")
	}

	var actorRole domain.Role
	if in.ActorRole == "" {
		fail("actor_role is required")
	} else if r, err := domain.ParseRole(in.ActorRole); err != nil {
		fail("actor_role is not a recognized role")
	} else {
		actorRole = r
	}

	action := Action(in.Action)
	if !action.IsValid() {
		fail("action is not a recognized audit action")
	}

	targetType := TargetType(in.TargetType)
	if !targetType.IsValid() {
		fail("target_type is not a recognized target type")
	}

	scope := Scope(in.Scope)
	if in.Scope == "" {
		fail("scope is required")
	} else if !scope.IsValid() {
		fail("scope must be own, org, shared or public")
	}

	result := Result(in.Result)
	if in.Result == "" {
		fail("result is required")
	} else if !result.IsValid() {
		fail("result must be success, denied or error")
	}

	if strings.TrimSpace(in.RequestID) == "" {
		fail("request_id is required")
	}

	reason := ReasonCode(in.ReasonCode)
	if in.ReasonCode != "" && !reason.IsValid() {
		fail("reason_code is not a recognized reason code")
	}

	if len(problems) > 0 {
		return Event{}, dErrors.New(dErrors.CodeBadRequest, "invalid audit event: "+strings.Join(problems, "; "))
	}

	return Event{
		EventID:          in.EventID,
		CreatedAt:        createdAt,
		ActorType:        actorType,
		ActorID:          in.ActorID,
		ActorRole:        actorRole,
		Action:           action,
		TargetType:       targetType,
		TargetID:         in.TargetID,
		Scope:            scope,
		Result:           result,
		RequestID:        in.RequestID,
		CorrelationID:    in.CorrelationID,
		ReasonCode:       reason,
		RedactedMetadata: SanitizeMetadata(in.Metadata),
	}, nil
}

// looksLikeUUID accepts any hex-and-hyphen string of at least 16 characters,
// which covers v4 and v7 without pinning a version.
func looksLikeUUID(s string) bool {
	if len(s) < minEventIDLength {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F', c == '-':
		default:
			return false
		}
	}
	return true
}

func parseCreatedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
