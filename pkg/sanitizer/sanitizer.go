package sanitizer

import "strings"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var dashReplacer = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

func normalizeDashes(s string) string {
	return dashReplacer.Replace(s)
}

func SanitizeTitle(input string) string {
	return Pipeline{TrimAndNormalize}.Apply(input)
}

// SanitizeDescription trims the ends but keeps line breaks the author typed.
func SanitizeDescription(input string) string {
	lines := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = TrimAndNormalize(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func SanitizeDate(input string) string {
	return Pipeline{strings.TrimSpace, normalizeDashes}.Apply(input)
}
