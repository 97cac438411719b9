package sanitizer

import "strings"

// CanonicalRoom maps input onto the matching entry of rooms, ignoring case,
// repeated whitespace and dash style. It reports false when nothing matches.
func CanonicalRoom(rooms []string, input string) (string, bool) {
	key := roomKey(input)
	if key == "" {
		return "", false
	}
	for _, room := range rooms {
		if roomKey(room) == key {
			return room, true
		}
	}
	return "", false
}

func roomKey(s string) string {
	return Pipeline{TrimAndNormalize, normalizeDashes, strings.ToLower}.Apply(s)
}
