// Package bangla repairs the text layer of Bangla electoral-roll PDFs.
package bangla

import "strings"

const (
	banglaZero = '০' // U+09E6
	banglaNine = '৯' // U+09EF
)

// ToArabicDigits maps every Bangla numeral to its ASCII digit. Everything
// else passes through unchanged.
func ToArabicDigits(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r >= banglaZero && r <= banglaNine {
			return '0' + (r - banglaZero)
		}
		return r
	}, s)
}

