package extract

import (
	"regexp"
	"strings"

	"github.com/rsmmonaem/voter-talika/internal/bangla"
	"github.com/rsmmonaem/voter-talika/internal/domain"
)

// Span is the byte range of one entry inside canonical text, from its
// marker up to the next marker or the end of the text.
type Span struct {
	Start  int
	End    int
	Serial string
}

// EntryExtractor segments page text into entries and pulls labeled fields
// out of each one. It is immutable once built and safe for concurrent use.
type EntryExtractor struct {
	marker   *regexp.Regexp
	voterNo  *regexp.Regexp
	labels   map[Field]*regexp.Regexp
	boundary *regexp.Regexp
}

// NewEntryExtractor compiles the label sets. Every field must have a set.
func NewEntryExtractor(sets []LabelSet) (*EntryExtractor, error) {
	if err := validateLabels(sets); err != nil {
		return nil, err
	}

	x := &EntryExtractor{labels: make(map[Field]*regexp.Regexp, len(sets))}
	bounds := make([]string, 0, len(sets))
	for _, s := range sets {
		alt := alternation(s.Variants)
		if s.Field == FieldVoterNo {
			x.voterNo = regexp.MustCompile(alt + `\s*:?\s*(` + digitClass + `+)`)
		} else {
			x.labels[s.Field] = regexp.MustCompile(alt + `\s*:`)
		}
		if s.Field == FieldName {
			x.marker = regexp.MustCompile(`(` + digitClass + `+)[.।]\s*` + alt + `\s*:`)
		}
		if s.StrictBoundary {
			bounds = append(bounds, alt+`\s*:`)
		} else {
			bounds = append(bounds, alt)
		}
	}
	x.boundary = regexp.MustCompile(`(?:` + strings.Join(bounds, "|") + `)`)
	return x, nil
}

// Segment splits canonical text at entry markers. Text before the first
// marker is not part of any span.
func (x *EntryExtractor) Segment(text string) []Span {
	locs := x.marker.FindAllStringSubmatchIndex(text, -1)
	spans := make([]Span, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		spans = append(spans, Span{
			Start:  loc[0],
			End:    end,
			Serial: bangla.ToArabicDigits(text[loc[2]:loc[3]]),
		})
	}
	return spans
}

// ExtractEntries returns every entry on a page that carries a voter number.
func (x *EntryExtractor) ExtractEntries(text string) []domain.VoterEntry {
	text = canonical(text)
	spans := x.Segment(text)
	entries := make([]domain.VoterEntry, 0, len(spans))
	for _, sp := range spans {
		if e, ok := x.parse(strings.TrimSpace(text[sp.Start:sp.End]), sp.Serial); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// ParseEntry extracts the fields of a single entry. ok is false when no
// voter number could be found.
func (x *EntryExtractor) ParseEntry(entry string) (domain.VoterEntry, bool) {
	entry = strings.TrimSpace(canonical(entry))
	var serial string
	if m := x.marker.FindStringSubmatch(entry); m != nil {
		serial = bangla.ToArabicDigits(m[1])
	}
	return x.parse(entry, serial)
}

func (x *EntryExtractor) parse(entry, serial string) (domain.VoterEntry, bool) {
	var voterNo string
	if m := x.voterNo.FindStringSubmatch(entry); m != nil {
		voterNo = bangla.ToArabicDigits(m[1])
	}
	if voterNo == "" {
		return domain.VoterEntry{}, false
	}

	name := x.value(entry, FieldName)
	if name == "" {
		name = domain.NameNotFound
	}

	return domain.VoterEntry{
		SerialNo:   serial,
		VoterNo:    voterNo,
		Name:       name,
		Father:     x.value(entry, FieldFather),
		Mother:     x.value(entry, FieldMother),
		Occupation: x.value(entry, FieldOccupation),
		DOB:        x.value(entry, FieldDOB),
		Address:    x.address(entry),
	}, true
}

// value returns the text after the field label up to the nearest following
// label of any field.
func (x *EntryExtractor) value(entry string, f Field) string {
	rest, ok := x.after(entry, f)
	if !ok {
		return ""
	}
	if loc := x.boundary.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return strings.TrimSpace(rest)
}

// address runs to the next entry marker, so labels inside an address do
// not cut it short.
func (x *EntryExtractor) address(entry string) string {
	rest, ok := x.after(entry, FieldAddress)
	if !ok {
		return ""
	}
	if loc := x.marker.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return strings.TrimSpace(rest)
}

func (x *EntryExtractor) after(entry string, f Field) (string, bool) {
	loc := x.labels[f].FindStringIndex(entry)
	if loc == nil {
		return "", false
	}
	return entry[loc[1]:], true
}

var defaultEntries = MustEntryExtractor(DefaultLabels)

// MustEntryExtractor is NewEntryExtractor for label sets known to be valid.
func MustEntryExtractor(sets []LabelSet) *EntryExtractor {
	x, err := NewEntryExtractor(sets)
	if err != nil {
		panic("extract: " + err.Error())
	}
	return x
}

// Segment splits text at entry markers using the default labels. The text
// must already be normalized for the offsets to be meaningful.
func Segment(text string) []Span {
	return defaultEntries.Segment(text)
}

// ExtractEntries extracts entries using the default labels.
func ExtractEntries(text string) []domain.VoterEntry {
	return defaultEntries.ExtractEntries(text)
}
