package rental

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used when a phone number carries no
// country prefix.
var DefaultPhoneRegion = "US"

// NormalizePhone formats a phone number to E.164 when it parses;
// unparseable input falls back to the trimmed original so a bad phone
// never blocks an onboarding transition.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	num, err := phonenumbers.Parse(trimmed, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return trimmed
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
