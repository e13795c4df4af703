package pseudonym

import dErrors "serviceheft/pkg/domain-errors"

// Hasher binds a validated key so callers do not carry it around.
// It is safe for concurrent use.
type Hasher struct {
	key Key
}

// NewHasher validates key and returns a Hasher bound to it.
func NewHasher(key Key) (*Hasher, error) {
	if len(key) < MinKeyLength {
		return nil, dErrors.New(dErrors.CodeBadRequest, "hmac key must be at least 32 characters")
	}
	return &Hasher{key: key}, nil
}

func (h *Hasher) Pseudonymize(value string) (string, error) {
	return Pseudonymize(value, h.key)
}

func (h *Hasher) EmailHMAC(email string) (string, error) {
	return EmailHMAC(email, h.key)
}

func (h *Hasher) OTPHash(otp, challengeID string) (string, error) {
	return OTPHash(otp, challengeID, h.key)
}

func (h *Hasher) TokenHash(rawToken string) (string, error) {
	return TokenHash(rawToken, h.key)
}

func (h *Hasher) Email(email string) (string, error) {
	return PseudonymizeEmail(email, h.key)
}

func (h *Hasher) IP(ip string) (string, error) {
	return PseudonymizeIP(ip, h.key)
}

func (h *Hasher) UserAgent(userAgent string) (string, error) {
	return PseudonymizeUserAgent(userAgent, h.key)
}
