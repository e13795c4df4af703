package consent

// DocType names a legal document that must be accepted.
type DocType string

const (
	DocTerms   DocType = "terms"
	DocPrivacy DocType = "privacy"
)

// IsValid reports whether t is a known document type.
func (t DocType) IsValid() bool {
	return t == DocTerms || t == DocPrivacy
}

func (t DocType) String() string { return string(t) }

// Source records where an acceptance was captured.
type Source string

const (
	SourceUI  Source = "ui"
	SourceAPI Source = "api"
)

func (s Source) IsValid() bool {
	return s == SourceUI || s == SourceAPI
}

// Record is one acceptance of one version of one document.
//
// AcceptedAt is kept as received; Validate checks that it parses. The hash
// fields are opaque pseudonyms and are only checked for length.
type Record struct {
	UserID        string  `json:"user_id"`
	DocType       DocType `json:"doc_type"`
	DocVersion    string  `json:"doc_version"`
	AcceptedAt    string  `json:"accepted_at"`
	Source        Source  `json:"source"`
	IPHMAC        string  `json:"ip_hmac,omitempty"`
	UserAgentHMAC string  `json:"user_agent_hmac,omitempty"`
	EvidenceHash  string  `json:"evidence_hash,omitempty"`
}

// RequiredVersions are the currently published document versions a user
// must have accepted.
type RequiredVersions struct {
	Terms   string `json:"terms"`
	Privacy string `json:"privacy"`
}

// For returns the required version of t, or "" for unknown types.
func (r RequiredVersions) For(t DocType) string {
	switch t {
	case DocTerms:
		return r.Terms
	case DocPrivacy:
		return r.Privacy
	default:
		return ""
	}
}
