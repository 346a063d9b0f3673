// internal/utils/text.go
package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	combiningMarks = runes.Predicate(func(r rune) bool {
		return r >= 0x0300 && r <= 0x036f
	})
	cedillaReplacer = strings.NewReplacer("ç", "c", "Ç", "C")
)

// FoldText prepares text for accent- and case-insensitive comparison:
// canonical decomposition, combining marks U+0300..U+036F removed, ç/Ç
// mapped to c/C, then case folding. "Café Ç" folds to "cafe c".
func FoldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	stripped = cedillaReplacer.Replace(stripped)
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(stripped)
}

// ContainsFolded reports whether folded(haystack) contains an already folded
// needle.
func ContainsFolded(haystack, foldedNeedle string) bool {
	return strings.Contains(FoldText(haystack), foldedNeedle)
}
