package requirement

import "strings"

// NullToken is the catalog's literal marker for a field with no value.
const NullToken = "Yok"

// Language-specific separators used by the requirement mini-language.
const (
	orKeyword  = "veya"
	andKeyword = "ve"
)

// Normalize trims a raw catalog field and recognizes the null token. The
// boolean result is false when the trimmed field is empty or equals the null
// token; otherwise the trimmed text is returned unchanged.
func Normalize(field string) (string, bool) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" || trimmed == NullToken {
		return "", false
	}
	return trimmed, true
}

// SplitAlternatives splits requirement text on the OR keyword and trims each
// piece. The pieces still need pair extraction; splitting alone does not
// validate them.
func SplitAlternatives(text string) []string {
	pieces := strings.Split(text, orKeyword)
	for i := range pieces {
		pieces[i] = strings.TrimSpace(pieces[i])
	}
	return pieces
}

// HasGroupedForm reports whether requirement text uses the parenthesized
// AND-group form: either an AND keyword introducing a group or the whole
// expression opening with a parenthesis.
func HasGroupedForm(text string) bool {
	return strings.Contains(text, andKeyword+" (") || strings.HasPrefix(text, "(")
}
