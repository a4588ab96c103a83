package bangla

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rsmmonaem/voter-talika/internal/domain"
)

// Glyph is one repair rule: a mangled sequence emitted by the PDF text layer
// and the Bangla text it stands for.
type Glyph struct {
	From string
	To   string
}

// GlyphTable is an immutable, validated substitution table.
type GlyphTable struct {
	name     string
	glyphs   []Glyph
	replacer *strings.Replacer
}

// NewGlyphTable validates glyphs and builds a table. Keys must be non-empty
// and unique, no key may occur inside another key, and no replacement may
// contain a key. Under those conditions a single replacement pass gives the
// same result regardless of rule order.
func NewGlyphTable(name string, glyphs []Glyph) (*GlyphTable, error) {
	seen := make(map[string]struct{}, len(glyphs))
	for _, g := range glyphs {
		if g.From == "" {
			return nil, fmt.Errorf("glyph table %q: empty key", name)
		}
		if _, dup := seen[g.From]; dup {
			return nil, fmt.Errorf("glyph table %q: duplicate key %q", name, g.From)
		}
		seen[g.From] = struct{}{}
	}
	for i, a := range glyphs {
		for j, b := range glyphs {
			if i != j && strings.Contains(b.From, a.From) {
				return nil, fmt.Errorf("glyph table %q: key %q overlaps key %q", name, a.From, b.From)
			}
			if strings.Contains(b.To, a.From) {
				return nil, fmt.Errorf("glyph table %q: replacement %q for %q contains key %q", name, b.To, b.From, a.From)
			}
		}
	}

	pairs := make([]string, 0, len(glyphs)*2)
	for _, g := range glyphs {
		pairs = append(pairs, g.From, g.To)
	}
	own := make([]Glyph, len(glyphs))
	copy(own, glyphs)

	return &GlyphTable{
		name:     name,
		glyphs:   own,
		replacer: strings.NewReplacer(pairs...),
	}, nil
}

// MustGlyphTable is NewGlyphTable for package-level tables; it panics on an
// invalid table so a broken table fails at startup.
func MustGlyphTable(name string, glyphs []Glyph) *GlyphTable {
	t, err := NewGlyphTable(name, glyphs)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table's registry name.
func (t *GlyphTable) Name() string { return t.name }

// Len returns the number of rules.
func (t *GlyphTable) Len() int { return len(t.glyphs) }

// Glyphs returns a copy of the rules in declaration order.
func (t *GlyphTable) Glyphs() []Glyph {
	out := make([]Glyph, len(t.glyphs))
	copy(out, t.glyphs)
	return out
}

// Apply substitutes every key occurrence in one left-to-right pass.
func (t *GlyphTable) Apply(s string) string {
	if t == nil || s == "" {
		return s
	}
	return t.replacer.Replace(s)
}

// MuPDFGlyphs repairs the text layer as MuPDF extracts it from the Election
// Commission font, including the (cid:N) placeholders it emits for glyphs it
// cannot name.
var MuPDFGlyphs = MustGlyphTable("mupdf", []Glyph{
	{"Î", "র্"},
	{"Ï", "ে"},
	{"Ë", "্য"},
	{"ƣ", "কু"},
	{"ń", "ম্ব"},
	{"į", "ন্য"},
	{"Œ", "ন্ট"},
	{"Ĵ", "প্র"},
	{"Ą", "দ্দী"},
	{"ŀ", "ল্হ"},
	{"ľ", "ব্দ"},
	{"ň", "ন্ন"},
	{"Ħ", "ম্ম"},
	{"Ķ", "ফ্ফ"},
	{"ġ", "দ্দি"},
	{"×", "ক্ত"},
	{"Ř", "শ্র"},
	{"Ɓ", "রু"},
	{"Ů", "স"},
	{"Ɔ", "হ"},
	{"ƀ", "জ"},
	{"ſ", "নূ"},
	{"Ĩ", "ন্ন"},
	{"ĺ", "ব্দ"},
	{"Ž", "ফ্ফ"},
	{"ķ", "ল্হ"},
	{"ļ", "দ্রে"},
	{"ŗ", "প্র"},
	{"Ş", "শ"},
	{"Ţ", "ষ"},
	{"Ñ", "ব্দু"},
	{"(cid:206)", "র্"},
	{"(cid:207)", "ে"},
	{"(cid:203)", "্য"},
	{"(cid:419)", "কু"},
	{"(cid:324)", "ম্ব"},
	{"(cid:303)", "ন্য"},
	{"(cid:140)", "ন্ট"},
	{"(cid:308)", "প্র"},
	{"(cid:215)", "ক্ত"},
	{"(cid:384)", "সু"},
})

// PDFJSGlyphs is the smaller table observed with pdf.js based extractors,
// which drop the stray e-kar glyph instead of mapping it.
var PDFJSGlyphs = MustGlyphTable("pdfjs", []Glyph{
	{"Ï", ""},
	{"ĥ", "্ম"},
	{"ē", "ত্"},
	{"ĺ", "ব্দ"},
	{"Ň", "ম্ম"},
	{"ė", "দ্দি"},
	{"×", "ক্ত"},
	{"Ř", "শ্র"},
	{"Ɓ", "রু"},
	{"ƣ", "শ"},
	{"Ů", "স"},
	{"Ɔ", "হ"},
	{"ƀ", "জ"},
})

var glyphTables = map[string]*GlyphTable{
	MuPDFGlyphs.Name(): MuPDFGlyphs,
	PDFJSGlyphs.Name(): PDFJSGlyphs,
}

// LookupGlyphTable returns a built-in table by name. An empty name selects
// the MuPDF table.
func LookupGlyphTable(name string) (*GlyphTable, error) {
	if name == "" {
		return MuPDFGlyphs, nil
	}
	t, ok := glyphTables[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %s)", domain.ErrUnknownGlyphTable, name, strings.Join(GlyphTableNames(), ", "))
	}
	return t, nil
}

// GlyphTableNames lists the built-in tables, sorted.
func GlyphTableNames() []string {
	names := make([]string, 0, len(glyphTables))
	for name := range glyphTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
