package utils

import "strings"

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u",
	"ñ", "n", "Ñ", "n",
)

// NormalizeAnswer lowercases and strips Spanish accents so keyword matching
// against agent output is insensitive to casing and diacritics.
func NormalizeAnswer(s string) string {
	return strings.ToLower(accentReplacer.Replace(strings.TrimSpace(s)))
}

// StripCodeFences removes Markdown code-fence wrappers the language model
// sometimes adds around JSON payloads.
func StripCodeFences(s string) string {
	out := strings.TrimSpace(s)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}

// ContainsAny reports whether the normalized haystack contains any of the
// given keywords.
func ContainsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
