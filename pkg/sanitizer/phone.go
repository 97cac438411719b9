package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// Regions tried, in order, for numbers written without a country code.
var supportedRegions = []string{
	"KZ",
	"US",
}

// NormalizePhone returns phone in E.164 form, or "" if it is not a valid
// number in any supported region.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			continue
		}
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}
	return ""
}

// SanitizeContact normalizes a free-form contact. Something that reads as a
// phone number and parses as one becomes E.164; anything else (an email, a
// messenger handle, a room number) is kept as whitespace-normalized text.
func SanitizeContact(contact string) string {
	contact = TrimAndNormalize(contact)
	if !looksLikePhone(contact) {
		return contact
	}
	if e164 := NormalizePhone(contact); e164 != "" {
		return e164
	}
	return contact
}

func looksLikePhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.' || r == ' ':
		default:
			return false
		}
	}
	return digits >= 7
}
