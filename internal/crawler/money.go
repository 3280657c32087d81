package crawler

import "regexp"

// monetaryPattern matches a pt-BR amount: dot thousands separators and an
// optional comma decimal part with one or two digits.
var monetaryPattern = regexp.MustCompile(`\d{1,3}(?:\.\d{3})*(?:,\d{1,2})?`)

// ParseMonetaryValue returns the first amount found in text, keeping its
// original separators, e.g. "R$ 1.234,56 (estimado)" -> "1.234,56".
func ParseMonetaryValue(text string) Field {
	m := monetaryPattern.FindString(text)
	if m == "" {
		return Field{}
	}
	return Found(m)
}
