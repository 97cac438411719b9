package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// SanitizeClock pads "9:5" to "09:05" and drops a seconds component in
// 00..59. Input that does not look like a clock time, including one with an
// out-of-range seconds field, is returned trimmed for the validator to reject.
func SanitizeClock(input string) string {
	s := strings.TrimSpace(input)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return s
	}
	for i, p := range parts {
		if p == "" || len(p) > 2 || strings.TrimFunc(p, unicode.IsDigit) != "" {
			return s
		}
		if len(p) == 1 {
			parts[i] = "0" + p
		}
	}
	if len(parts) == 3 && parts[2] > "59" {
		return s
	}
	return parts[0] + ":" + parts[1]
}
