package record

import "strings"

// NormalizePhone reduces a phone number in any format to its digits,
// dropping spaces, parentheses, dashes, plus signs and everything else.
// Storage keys are NOT normalized; callers that want "+7 (999) 123-45-67"
// and "79991234567" to collide can normalize before hitting the API.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
