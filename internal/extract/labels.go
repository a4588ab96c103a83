// Package extract recovers document headers and voter entries from
// normalized roll text.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field names a labeled voter attribute.
type Field string

const (
	FieldVoterNo    Field = "voter_no"
	FieldName       Field = "name"
	FieldFather     Field = "father"
	FieldMother     Field = "mother"
	FieldOccupation Field = "occupation"
	FieldDOB        Field = "dob"
	FieldAddress    Field = "address"
)

// LabelSet lists every known spelling of one field label, OCR damage
// included. A space inside a variant matches any run of whitespace,
// including none.
type LabelSet struct {
	Field    Field
	Variants []string
	// StrictBoundary makes the label count as a value boundary only when
	// it is followed by a colon. Used for labels that are common words.
	StrictBoundary bool
}

// DefaultLabels are the spellings seen in the Election Commission rolls.
var DefaultLabels = []LabelSet{
	{Field: FieldVoterNo, Variants: []string{"ভোটার", "ভাটার", "নং"}},
	{Field: FieldName, Variants: []string{"নাম"}, StrictBoundary: true},
	{Field: FieldFather, Variants: []string{"পিতা", "িপতা", "পতা"}},
	{Field: FieldMother, Variants: []string{"মাতা"}},
	{Field: FieldOccupation, Variants: []string{"পেশা", "পশা"}},
	{Field: FieldDOB, Variants: []string{"জন্ম তারিখ", "তারিখ", "তািরখ"}},
	{Field: FieldAddress, Variants: []string{"ঠিকানা", "িঠকানা"}},
}

const digitClass = `[0-9০-৯]`

// canonical brings text and labels to the same Unicode composition.
func canonical(s string) string {
	return norm.NFC.String(s)
}

// variantPattern quotes a label spelling for use in a regexp.
func variantPattern(v string) string {
	words := strings.Fields(canonical(v))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s*`)
}

// alternation builds a non-capturing group over the variants, longest
// first so a longer spelling wins over its own suffix at the same offset.
func alternation(variants []string) string {
	parts := make([]string, 0, len(variants))
	for _, v := range variants {
		if p := variantPattern(v); p != "" {
			parts = append(parts, p)
		}
	}
	sort.SliceStable(parts, func(i, j int) bool { return len(parts[i]) > len(parts[j]) })
	return `(?:` + strings.Join(parts, "|") + `)`
}

func validateLabels(sets []LabelSet) error {
	seen := make(map[Field]bool, len(sets))
	for _, s := range sets {
		if seen[s.Field] {
			return fmt.Errorf("label set for %s declared twice", s.Field)
		}
		seen[s.Field] = true
		if len(s.Variants) == 0 {
			return fmt.Errorf("label set for %s has no variants", s.Field)
		}
		for _, v := range s.Variants {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("label set for %s has a blank variant", s.Field)
			}
		}
	}
	for _, f := range []Field{FieldVoterNo, FieldName, FieldFather, FieldMother, FieldOccupation, FieldDOB, FieldAddress} {
		if !seen[f] {
			return fmt.Errorf("missing label set for %s", f)
		}
	}
	return nil
}
