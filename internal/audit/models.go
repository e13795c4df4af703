package audit

import (
	"time"

	"serviceheft/pkg/domain"
)

// ActorType distinguishes people from automated jobs.
type ActorType string

const (
	ActorUser   ActorType = "user"
	ActorSystem ActorType = "system"
)

// Action is the closed set of audited actions.
type Action string

const (
	// Authentication
	ActionAuthOTPRequested Action = "auth_otp_requested"
	ActionAuthOTPVerified  Action = "auth_otp_verified"
	ActionAuthLogin        Action = "auth_login"
	ActionAuthLogout       Action = "auth_logout"

	// Consent
	ActionConsentAccepted Action = "consent_accepted"

	// Vehicles and service entries
	ActionVehicleCreated Action = "vehicle_created"
	ActionVehicleViewed  Action = "vehicle_viewed"
	ActionEntryCreated   Action = "entry_created"
	ActionEntryUpdated   Action = "entry_updated"
	ActionEntryDeleted   Action = "entry_deleted"

	// Documents
	ActionDocumentUploaded   Action = "document_uploaded"
	ActionDocumentViewed     Action = "document_viewed"
	ActionDocumentDownloaded Action = "document_downloaded"

	// Transfers, sales and sharing
	ActionTransferGenerated Action = "transfer_generated"
	ActionTransferRedeemed  Action = "transfer_redeemed"
	ActionSaleStarted       Action = "sale_started"
	ActionGrantAdded        Action = "grant_added"
	ActionGrantRevoked      Action = "grant_revoked"

	// Governance
	ActionRoleChanged      Action = "role_changed"
	ActionVIPStaffApproved Action = "vip_staff_approved"

	// Content
	ActionBlogPublished  Action = "blog_published"
	ActionBlogDeleted    Action = "blog_deleted"
	ActionNewsletterSent Action = "newsletter_sent"

	// Exports
	ActionExportRedacted Action = "export_redacted"
	ActionExportFull     Action = "export_full"

	ActionAccessDenied Action = "access_denied"
)

var validActions = map[Action]bool{
	ActionAuthOTPRequested:   true,
	ActionAuthOTPVerified:    true,
	ActionAuthLogin:          true,
	ActionAuthLogout:         true,
	ActionConsentAccepted:    true,
	ActionVehicleCreated:     true,
	ActionVehicleViewed:      true,
	ActionEntryCreated:       true,
	ActionEntryUpdated:       true,
	ActionEntryDeleted:       true,
	ActionDocumentUploaded:   true,
	ActionDocumentViewed:     true,
	ActionDocumentDownloaded: true,
	ActionTransferGenerated:  true,
	ActionTransferRedeemed:   true,
	ActionSaleStarted:        true,
	ActionGrantAdded:         true,
	ActionGrantRevoked:       true,
	ActionRoleChanged:        true,
	ActionVIPStaffApproved:   true,
	ActionBlogPublished:      true,
	ActionBlogDeleted:        true,
	ActionNewsletterSent:     true,
	ActionExportRedacted:     true,
	ActionExportFull:         true,
	ActionAccessDenied:       true,
}

// IsValid reports whether the action is part of the closed set.
func (a Action) IsValid() bool { return validActions[a] }

// TargetType is the closed set of audited object kinds.
type TargetType string

const (
	TargetUser         TargetType = "user"
	TargetVehicle      TargetType = "vehicle"
	TargetEntry        TargetType = "entry"
	TargetDocument     TargetType = "document"
	TargetTransfer     TargetType = "transfer"
	TargetConsent      TargetType = "consent"
	TargetSession      TargetType = "session"
	TargetOrganization TargetType = "organization"
	TargetBlogPost     TargetType = "blog_post"
	TargetNewsletter   TargetType = "newsletter"
	TargetExport       TargetType = "export"
	TargetSystem       TargetType = "system"
)

var validTargetTypes = map[TargetType]bool{
	TargetUser:         true,
	TargetVehicle:      true,
	TargetEntry:        true,
	TargetDocument:     true,
	TargetTransfer:     true,
	TargetConsent:      true,
	TargetSession:      true,
	TargetOrganization: true,
	TargetBlogPost:     true,
	TargetNewsletter:   true,
	TargetExport:       true,
	TargetSystem:       true,
}

func (t TargetType) IsValid() bool { return validTargetTypes[t] }

// Scope describes whose data the action touched.
type Scope string

const (
	ScopeOwn    Scope = "own"
	ScopeOrg    Scope = "org"
	ScopeShared Scope = "shared"
	ScopePublic Scope = "public"
)

func (s Scope) IsValid() bool {
	switch s {
	case ScopeOwn, ScopeOrg, ScopeShared, ScopePublic:
		return true
	}
	return false
}

// Result is the outcome of the audited action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultDenied  Result = "denied"
	ResultError   Result = "error"
)

func (r Result) IsValid() bool {
	switch r {
	case ResultSuccess, ResultDenied, ResultError:
		return true
	}
	return false
}

// ReasonCode explains a denied or failed action.
type ReasonCode string

const (
	ReasonNotAuthenticated ReasonCode = "not_authenticated"
	ReasonForbidden        ReasonCode = "forbidden"
	ReasonInvalidInput     ReasonCode = "invalid_input"
	ReasonConsentMissing   ReasonCode = "consent_missing"
	ReasonNotFound         ReasonCode = "not_found"
	ReasonConflict         ReasonCode = "conflict"
	ReasonExpired          ReasonCode = "expired"
	ReasonRateLimited      ReasonCode = "rate_limited"
	ReasonStaffCapExceeded ReasonCode = "staff_cap_exceeded"
	ReasonInternalError    ReasonCode = "internal_error"
)

var validReasonCodes = map[ReasonCode]bool{
	ReasonNotAuthenticated: true,
	ReasonForbidden:        true,
	ReasonInvalidInput:     true,
	ReasonConsentMissing:   true,
	ReasonNotFound:         true,
	ReasonConflict:         true,
	ReasonExpired:          true,
	ReasonRateLimited:      true,
	ReasonStaffCapExceeded: true,
	ReasonInternalError:    true,
}

func (r ReasonCode) IsValid() bool { return validReasonCodes[r] }

// EventInput is a proposed audit record as supplied by a caller. Fields are
// raw strings so the builder can reject anything outside the closed sets.
type EventInput struct {
	EventID       string
	CreatedAt     string
	ActorType     string
	ActorID       string
	ActorRole     string
	Action        string
	TargetType    string
	TargetID      string
	Scope         string
	Result        string
	RequestID     string
	CorrelationID string
	ReasonCode    string
	Metadata      map[string]any
}

// Event is the canonical, storable audit record. It is append-only: once
// built it is never mutated.
//
// Invariant: an Event never carries secrets, tokens, OTPs, document content
// or raw PII; callers pass identifiers through package pseudonym first.
type Event struct {
	EventID          string         `json:"event_id"`
	CreatedAt        time.Time      `json:"created_at"`
	ActorType        ActorType      `json:"actor_type"`
	ActorID          string         `json:"actor_id"`
	ActorRole        domain.Role    `json:"actor_role"`
	Action           Action         `json:"action"`
	TargetType       TargetType     `json:"target_type"`
	TargetID         string         `json:"target_id,omitempty"`
	Scope            Scope          `json:"scope"`
	Result           Result         `json:"result"`
	RequestID        string         `json:"request_id"`
	CorrelationID    string         `json:"correlation_id,omitempty"`
	ReasonCode       ReasonCode     `json:"reason_code,omitempty"`
	RedactedMetadata map[string]any `json:"redacted_metadata,omitempty"`
}
