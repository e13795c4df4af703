package audit

import (
	"strings"

	"github.com/mssola/useragent"
)

// DeviceMetadata summarizes a User-Agent into coarse fields that are safe to
// keep as audit metadata. The raw string itself is never returned; use
// pseudonym.PseudonymizeUserAgent when the exact agent must be referenced.
func DeviceMetadata(userAgent string) map[string]any {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	return SanitizeMetadata(map[string]any{
		"device_browser": browser,
		"device_os":      ua.OS(),
		"device_mobile":  ua.Mobile(),
		"device_bot":     ua.Bot(),
	})
}
