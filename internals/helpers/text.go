// helper/text.go
package helper

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
)

// CleanText: NFC + trim + kompres whitespace. Dipakai untuk remarks, nama, dsb.
func CleanText(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	return reSpaces.ReplaceAllString(s, " ")
}

// StrPtr: nil kalau kosong setelah CleanText.
func StrPtr(s string) *string {
	s = CleanText(s)
	if s == "" {
		return nil
	}
	return &s
}
