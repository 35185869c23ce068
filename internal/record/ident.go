package record

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName folds a table or column name to its canonical lower-case form.
// Names are compared case-insensitively everywhere through this function.
func NormalizeName(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ValidIdent reports whether s is a single identifier token:
// first rune letter or '_', the rest letters, digits or '_'.
func ValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
