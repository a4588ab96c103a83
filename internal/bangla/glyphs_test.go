package bangla

import (
	"errors"
	"strings"
	"testing"

	"github.com/rsmmonaem/voter-talika/internal/domain"
)

func TestNewGlyphTable_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []Glyph
	}{
		{"empty key", []Glyph{{"", "ক"}}},
		{"duplicate key", []Glyph{{"Ï", "ে"}, {"Ï", "ি"}}},
		{"key inside key", []Glyph{{"(cid:20)", "ক"}, {"(cid:207)", "ে"}}},
		{"replacement contains key", []Glyph{{"Ï", "aÎ"}, {"Î", "র্"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGlyphTable("test", tt.glyphs); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestBuiltInTablesAreValid(t *testing.T) {
	for _, name := range GlyphTableNames() {
		table, err := LookupGlyphTable(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if _, err := NewGlyphTable(name, table.Glyphs()); err != nil {
			t.Fatalf("table %s failed validation: %v", name, err)
		}
	}
}

func TestGlyphTable_ApplyIsOrderIndependent(t *testing.T) {
	glyphs := MuPDFGlyphs.Glyphs()
	reversed := make([]Glyph, len(glyphs))
	for i, g := range glyphs {
		reversed[len(glyphs)-1-i] = g
	}
	other, err := NewGlyphTable("reversed", reversed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sb strings.Builder
	for _, g := range glyphs {
		sb.WriteString(g.From)
		sb.WriteString(" x")
	}
	in := sb.String()

	if a, b := MuPDFGlyphs.Apply(in), other.Apply(in); a != b {
		t.Fatalf("order changed the result:\n%q\n%q", a, b)
	}
}

func TestGlyphTable_Apply(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"×", "ক্ত"},
		{"(cid:207)", "ে"},
		{"(cid:384)", "সু"},
		{"ĴĴ", "প্রপ্র"},
		{"unmapped Ø stays", "unmapped Ø stays"},
	}
	for _, tt := range tests {
		if got := MuPDFGlyphs.Apply(tt.in); got != tt.want {
			t.Fatalf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLookupGlyphTable(t *testing.T) {
	if table, err := LookupGlyphTable(""); err != nil || table != MuPDFGlyphs {
		t.Fatalf("expected default table, got %v, %v", table, err)
	}
	if table, err := LookupGlyphTable("PDFJS"); err != nil || table != PDFJSGlyphs {
		t.Fatalf("expected pdfjs table, got %v, %v", table, err)
	}
	if _, err := LookupGlyphTable("bijoy"); !errors.Is(err, domain.ErrUnknownGlyphTable) {
		t.Fatalf("expected ErrUnknownGlyphTable, got %v", err)
	}
}
