package audit

import (
	"encoding/json"
	"math"
	"strings"
	"unicode/utf8"
)

const maxMetadataStringLength = 120

// deniedMetadataKeys never reach storage, whatever their value. Keys are
// compared case-insensitively.
var deniedMetadataKeys = func() map[string]bool {
	keys := []string{
		// identifiers
		"email", "phone", "name", "address", "vin", "wid", "ip", "userAgent",
		// secrets
		"otp", "code", "token", "magicLink", "password", "accessToken", "refreshToken",
		// content hints
		"document_name", "filename", "file_name", "title", "content", "body",
	}
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[strings.ToLower(k)] = true
	}
	return m
}()

// SanitizeMetadata keeps the entries that are safe to store and silently
// drops the rest. A kept entry has a non-empty, non-denied key and a value
// that is nil, a bool, a finite number, or a string of 1 to 120 characters
// without '@'. It returns nil when nothing survives.
func SanitizeMetadata(in map[string]any) map[string]any {
	var out map[string]any
	for k, v := range in {
		if k == "" || deniedMetadataKeys[strings.ToLower(k)] {
			continue
		}
		if !allowedMetadataValue(v) {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(in))
		}
		out[k] = v
	}
	return out
}

func allowedMetadataValue(v any) bool {
	switch val := v.(type) {
	case nil, bool:
		return true
	case string:
		n := utf8.RuneCountInString(val)
		return n >= 1 && n <= maxMetadataStringLength && !strings.Contains(val, "@")
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return isFinite(float64(val))
	case float64:
		return isFinite(val)
	case json.Number:
		f, err := val.Float64()
		return err == nil && isFinite(f)
	default:
		return false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
