package pseudonym

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "serviceheft/pkg/domain-errors"
)

const (
	testKey  Key = "0123456789abcdef0123456789abcdef"
	otherKey Key = "fedcba9876543210fedcba9876543210"
)

func mustHash(t *testing.T, fn func() (string, error)) string {
	t.Helper()
	h, err := fn()
	require.NoError(t, err)
	return h
}

func TestHMACSHA256Base64URL(t *testing.T) {
	t.Run("matches reference vector", func(t *testing.T) {
		h, err := HMACSHA256Base64URL("user@example.com", testKey)
		require.NoError(t, err)
		assert.Equal(t, "avc8TiZ3V0tIIvz71BpAglhxiiXmWxwDn-KTRXboNEs", h)
	})

	t.Run("output is unpadded base64url", func(t *testing.T) {
		h, err := HMACSHA256Base64URL("anything", testKey)
		require.NoError(t, err)
		assert.Len(t, h, 43)
		assert.False(t, strings.ContainsAny(h, "+/="))
	})

	t.Run("rejects empty value", func(t *testing.T) {
		_, err := HMACSHA256Base64URL("", testKey)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects short key", func(t *testing.T) {
		_, err := HMACSHA256Base64URL("value", Key(strings.Repeat("k", 31)))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("accepts key of exactly minimum length", func(t *testing.T) {
		_, err := HMACSHA256Base64URL("value", Key(strings.Repeat("k", 32)))
		require.NoError(t, err)
	})

	t.Run("pseudonymize is the same hash", func(t *testing.T) {
		a := mustHash(t, func() (string, error) { return Pseudonymize("v", testKey) })
		b := mustHash(t, func() (string, error) { return HMACSHA256Base64URL("v", testKey) })
		assert.Equal(t, a, b)
	})
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"User@EXAMPLE.com ", "user@example.com"},
		{"  user@example.com", "user@example.com"},
		{"ＵＳＥＲ@example.com", "user@example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in), tt.in)
	}
}

func TestEmailHMAC(t *testing.T) {
	a := mustHash(t, func() (string, error) { return EmailHMAC("User@EXAMPLE.com ", testKey) })
	b := mustHash(t, func() (string, error) { return EmailHMAC("user@example.com", testKey) })
	c := mustHash(t, func() (string, error) { return EmailHMAC("user@example.com", otherKey) })

	assert.Equal(t, a, b)
	assert.NotEqual(t, b, c)
	assert.Equal(t, "avc8TiZ3V0tIIvz71BpAglhxiiXmWxwDn-KTRXboNEs", b)

	_, err := EmailHMAC("   ", testKey)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestOTPHash(t *testing.T) {
	a := mustHash(t, func() (string, error) { return OTPHash("123456", "challengeA", testKey) })
	b := mustHash(t, func() (string, error) { return OTPHash("123456", "challengeB", testKey) })

	assert.NotEqual(t, a, b)
	assert.Equal(t, "aUUY13EbcpdTYJYhvOS-xMbbOsAoNgbppoHLU06xSeg", a)
}

func TestTokenHash(t *testing.T) {
	a := mustHash(t, func() (string, error) { return TokenHash("tok_abc", testKey) })
	b := mustHash(t, func() (string, error) { return TokenHash("tok_abc", testKey) })
	assert.Equal(t, a, b)
	assert.NotContains(t, a, "tok_abc")
}

func TestTypePrefixesPreventCollisions(t *testing.T) {
	const raw = "10.0.0.1"
	email := mustHash(t, func() (string, error) { return PseudonymizeEmail(raw, testKey) })
	ip := mustHash(t, func() (string, error) { return PseudonymizeIP(raw, testKey) })
	ua := mustHash(t, func() (string, error) { return PseudonymizeUserAgent(raw, testKey) })
	plain := mustHash(t, func() (string, error) { return Pseudonymize(raw, testKey) })

	assert.NotEqual(t, email, ip)
	assert.NotEqual(t, ip, ua)
	assert.NotEqual(t, email, ua)
	assert.NotEqual(t, plain, ip)

	assert.Equal(t, "WHUiJp4kMxKl1vILzceNyXo-ZE4q1wLNuUrJVQwDs0Y",
		mustHash(t, func() (string, error) { return PseudonymizeEmail("user@example.com", testKey) }))
}

func TestKeyIsNeverRendered(t *testing.T) {
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", testKey))
	assert.Equal(t, "[REDACTED]", fmt.Sprint(testKey))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.InfoContext(context.Background(), "loaded key", "key", testKey)
	assert.NotContains(t, buf.String(), string(testKey))
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestHasher(t *testing.T) {
	_, err := NewHasher("short")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	h, err := NewHasher(testKey)
	require.NoError(t, err)

	pairs := []struct {
		name      string
		got, want func() (string, error)
	}{
		{"pseudonymize", func() (string, error) { return h.Pseudonymize("x") }, func() (string, error) { return Pseudonymize("x", testKey) }},
		{"email hmac", func() (string, error) { return h.EmailHMAC("A@b.c") }, func() (string, error) { return EmailHMAC("a@b.c", testKey) }},
		{"otp", func() (string, error) { return h.OTPHash("1", "c") }, func() (string, error) { return OTPHash("1", "c", testKey) }},
		{"token", func() (string, error) { return h.TokenHash("t") }, func() (string, error) { return TokenHash("t", testKey) }},
		{"email", func() (string, error) { return h.Email("e") }, func() (string, error) { return PseudonymizeEmail("e", testKey) }},
		{"ip", func() (string, error) { return h.IP("i") }, func() (string, error) { return PseudonymizeIP("i", testKey) }},
		{"user agent", func() (string, error) { return h.UserAgent("u") }, func() (string, error) { return PseudonymizeUserAgent("u", testKey) }},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			assert.Equal(t, mustHash(t, p.want), mustHash(t, p.got))
		})
	}
}
