package timeline

import (
	"regexp"
	"strings"
)

// nameRE accepts two or more whitespace-separated capitalized words
// (accented letters allowed), each optionally hyphen- or apostrophe-joined
// to another capitalized word. Pure-uppercase tokens fail the lowercase-tail
// rule on every letter past the first.
var nameRE = regexp.MustCompile(`^([A-ZÀ-Ý][a-zà-ÿ]*(?:['-][A-ZÀ-Ý][a-zà-ÿ]+)*\s)+[A-ZÀ-Ý][a-zà-ÿ]*(?:['-][A-ZÀ-Ý][a-zà-ÿ]+)*$`)

// IsValidName reports whether a recognized string is a plausible human name.
func IsValidName(s string) bool {
	return nameRE.MatchString(s)
}

// FixOCRArtifacts corrects known OCR confusions before validation. The OCR
// engine reads a capital O as the digit zero in name badges.
func FixOCRArtifacts(s string) string {
	return strings.ReplaceAll(s, "0", "O")
}
