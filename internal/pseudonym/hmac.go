// Package pseudonym turns sensitive identifiers into keyed, non-reversible
// tokens before they are logged or stored.
//
// Every hashing function takes the key explicitly and never reads process
// state; resolve the key once at startup with KeyFromEnv and pass it down,
// or bind it into a Hasher.
package pseudonym

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	dErrors "serviceheft/pkg/domain-errors"
)

// MinKeyLength is the minimum key length accepted by every hashing function.
const MinKeyLength = 32

// Type prefixes keep identical byte strings of different kinds from
// colliding.
const (
	prefixEmail     = "email:"
	prefixIP        = "ip:"
	prefixUserAgent = "ua:"
)

// Key is an HMAC key. It never renders its value in logs or format verbs.
type Key string

// String hides the key from fmt.
func (Key) String() string { return "[REDACTED]" }

// LogValue hides the key from slog.
func (Key) LogValue() slog.Value { return slog.StringValue("[REDACTED]") }

// NormalizeEmail trims, lowercases and NFKC-normalizes an address so the same
// logical email always hashes the same way.
func NormalizeEmail(email string) string {
	return norm.NFKC.String(strings.ToLower(strings.TrimSpace(email)))
}

// HMACSHA256Base64URL returns the unpadded base64url HMAC-SHA256 of value.
func HMACSHA256Base64URL(value string, key Key) (string, error) {
	if value == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "value to pseudonymize must not be empty")
	}
	if len(key) < MinKeyLength {
		return "", dErrors.New(dErrors.CodeBadRequest, "hmac key must be at least 32 characters")
	}
	mac := hmac.New(sha256.New, []byte(key))
	_, _ = mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Pseudonymize hashes an arbitrary value.
func Pseudonymize(value string, key Key) (string, error) {
	return HMACSHA256Base64URL(value, key)
}

// EmailHMAC hashes the normalized form of email.
func EmailHMAC(email string, key Key) (string, error) {
	return HMACSHA256Base64URL(NormalizeEmail(email), key)
}

// OTPHash binds a one-time code to the challenge that issued it, so equal
// codes from different challenges never share a hash.
func OTPHash(otp, challengeID string, key Key) (string, error) {
	return HMACSHA256Base64URL(otp+challengeID, key)
}

// TokenHash hashes a raw bearer or magic-link token.
func TokenHash(rawToken string, key Key) (string, error) {
	return HMACSHA256Base64URL(rawToken, key)
}

// PseudonymizeEmail hashes a type-prefixed email.
func PseudonymizeEmail(email string, key Key) (string, error) {
	return HMACSHA256Base64URL(prefixEmail+email, key)
}

// PseudonymizeIP hashes a type-prefixed IP address.
func PseudonymizeIP(ip string, key Key) (string, error) {
	return HMACSHA256Base64URL(prefixIP+ip, key)
}

// PseudonymizeUserAgent hashes a type-prefixed User-Agent.
func PseudonymizeUserAgent(userAgent string, key Key) (string, error) {
	return HMACSHA256Base64URL(prefixUserAgent+userAgent, key)
}
