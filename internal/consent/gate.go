package consent

import (
	"fmt"
	"strings"
	"time"

	dErrors "serviceheft/pkg/domain-errors"
)

const minHashLength = 16

var acceptedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// requiredDocs is the order in which missing documents are reported.
var requiredDocs = []DocType{DocTerms, DocPrivacy}

// Validate checks a single record's fields. It does not look at versions.
func (r Record) Validate() error {
	var problems []string
	fail := func(msg string) { problems = append(problems, msg) }

	if strings.TrimSpace(r.UserID) == "" {
		fail("user_id is required")
	}
	if !r.DocType.IsValid() {
		fail("doc_type must be terms or privacy")
	}
	if strings.TrimSpace(r.DocVersion) == "" {
		fail("doc_version is required")
	}
	if _, ok := ParseAcceptedAt(r.AcceptedAt); !ok {
		fail("accepted_at must be a date")
	}
	if !r.Source.IsValid() {
		fail("source must be ui or api")
	}
	checkHash := func(field, value string) {
		if value != "" && len(value) < minHashLength {
			fail(fmt.Sprintf("%s must be at least %d characters", field, minHashLength))
		}
	}
	checkHash("ip_hmac", r.IPHMAC)
	checkHash("user_agent_hmac", r.UserAgentHMAC)
	checkHash("evidence_hash", r.EvidenceHash)

	if len(problems) > 0 {
		return dErrors.New(dErrors.CodeBadRequest, "invalid consent record: "+strings.Join(problems, "; "))
	}
	return nil
}

// ParseAcceptedAt parses an accepted_at value in any supported layout and
// returns it in UTC.
func ParseAcceptedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// AssertMeetsRequirements fails with CodeBadRequest unless records holds a
// valid acceptance of exactly required.Terms for terms and exactly
// required.Privacy for privacy. A nil slice is rejected as absent input; an
// empty one simply misses both documents.
//
// Versions are compared as opaque strings. Accepting an older or newer
// version does not count.
func AssertMeetsRequirements(records []Record, required RequiredVersions) error {
	if records == nil {
		return dErrors.New(dErrors.CodeBadRequest, "consent records are required")
	}
	if strings.TrimSpace(required.Terms) == "" || strings.TrimSpace(required.Privacy) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "required versions must include terms and privacy")
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("consent record %d", i))
		}
	}
	if missing := Missing(records, required); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, t := range missing {
			names[i] = fmt.Sprintf("%s %s", t, required.For(t))
		}
		return dErrors.New(dErrors.CodeBadRequest, "missing consent for "+strings.Join(names, ", "))
	}
	return nil
}

// Missing returns the documents, in terms-then-privacy order, that have no
// record at exactly the required version. It does not validate records.
func Missing(records []Record, required RequiredVersions) []DocType {
	var missing []DocType
	for _, doc := range requiredDocs {
		if !hasAcceptance(records, doc, required.For(doc)) {
			missing = append(missing, doc)
		}
	}
	return missing
}

func hasAcceptance(records []Record, doc DocType, version string) bool {
	if version == "" {
		return false
	}
	for _, r := range records {
		if r.DocType == doc && r.DocVersion == version {
			return true
		}
	}
	return false
}
