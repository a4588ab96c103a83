package bangla

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// preBaseVowel matches a pre-base dependent vowel sign (e-kar, i-kar, oi-kar,
// ii-kar) sitting in front of the letter it belongs to.
var preBaseVowel = regexp.MustCompile(`([\x{09C7}\x{09BF}\x{09C8}\x{09C0}])([\x{0985}-\x{09B9}])`)

// detachedVowel matches a pre-base vowel sign with no Bangla character before
// it and a letter after it. Logical-order text never contains one;
// visual-order text has one at the start of almost every word that begins
// with e-kar or i-kar. A stray sign with no letter after it is not counted,
// since reordering cannot attach it anywhere.
var detachedVowel = regexp.MustCompile(`(?:^|[^\x{0980}-\x{09FF}])[\x{09C7}\x{09BF}\x{09C8}\x{09C0}][\x{0985}-\x{09B9}]`)

// Normalizer turns raw page text into repaired Bangla. It holds no mutable
// state and is safe for concurrent use.
type Normalizer struct {
	table *GlyphTable
}

// NewNormalizer returns a Normalizer using table; nil selects the MuPDF table.
func NewNormalizer(table *GlyphTable) *Normalizer {
	if table == nil {
		table = MuPDFGlyphs
	}
	return &Normalizer{table: table}
}

// Table returns the glyph table in use.
func (n *Normalizer) Table() *GlyphTable { return n.table }

// Normalize repairs raw text in four passes, each relying on the previous:
// glyph substitution, vowel-sign reordering, canonical composition and
// whitespace collapsing. Reordering only runs on text that is still in
// visual order, which keeps Normalize idempotent.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	text := n.table.Apply(raw)
	if InVisualOrder(text) {
		text = ReorderVowelSigns(text)
	}
	text = norm.NFC.String(text)
	return CollapseSpace(text)
}

// InVisualOrder reports whether s still carries pre-base vowel signs in
// front of their letters.
func InVisualOrder(s string) bool {
	return detachedVowel.MatchString(s)
}

// ReorderVowelSigns moves each pre-base vowel sign behind the letter that
// follows it. Matches never overlap, so "িকিব" becomes "কিবি".
func ReorderVowelSigns(s string) string {
	return preBaseVowel.ReplaceAllString(s, "${2}${1}")
}

// CollapseSpace replaces every whitespace run with one space and trims.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var defaultNormalizer = NewNormalizer(nil)

// Normalize runs the default (MuPDF table) normalizer.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}
