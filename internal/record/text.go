package record

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText trims surrounding whitespace and NFC-normalizes s.
//
// Names are stored normalized so that a search typed with precomposed
// characters finds a name entered with combining marks, and vice versa.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
