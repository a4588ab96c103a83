package extract

import (
	"regexp"
	"strings"

	"github.com/rsmmonaem/voter-talika/internal/bangla"
	"github.com/rsmmonaem/voter-talika/internal/domain"
)

// headerLabels are the label words printed in the roll header block. Any of
// them followed by a colon ends the free-text area name.
var headerLabels = []string{
	"জেলা", "উপজেলা", "থানা", "সিটি কর্পোরেশন", "পৌরসভা", "ইউনিয়ন",
	"ওয়ার্ড", "ওয়াড", "ভোটার", "এলাকার নম্বর", "কোড", "ডাকঘর",
	"পোস্টকোড", "পোষ্টকোড", "প্রকাশের তারিখ",
}

const wordStart = `(?:^|[^\x{0980}-\x{09FF}])`

var (
	// "জেলা" ends "উপজেলা" and "কোড" ends "পোস্টকোড", so both labels must
	// start a word.
	districtPattern = regexp.MustCompile(wordStart + alternation([]string{"জেলা"}) + `\s*:\s*(\S+)`)
	areaCodePattern = regexp.MustCompile(wordStart + alternation([]string{"কোড"}) + `\s*:\s*(` + digitClass + `+)`)
	areaNamePattern = regexp.MustCompile(alternation([]string{"এলাকার নাম"}) + `\s*:\s*([^\r\n]+)`)
	wardPattern     = regexp.MustCompile(alternation([]string{"ওয়ার্ড", "ওয়াড"}) +
		`(?:` + variantPattern("র") + `)?\s*` +
		`(?:` + alternation([]string{"নম্বর", "নং"}) + `)?` +
		`(?:\s*\(.*?\))?\s*[:\-]?\s*(` + digitClass + `+)`)
	headerBoundary = regexp.MustCompile(alternation(headerLabels) + `[^:\r\n]{0,40}:|` +
		digitClass + `+[.।]\s*` + alternation([]string{"নাম"}) + `\s*:`)
	wardInPath = regexp.MustCompile(`(?i)WARD NO-(` + digitClass + `+)`)
)

// ExtractHeader reads the document header from first-page text. The ward
// falls back to a "WARD NO-<n>" token in sourcePath when the body has none.
// Fields that cannot be found are left empty.
func ExtractHeader(text, sourcePath string) domain.DocumentHeader {
	text = canonical(text)

	var h domain.DocumentHeader
	if m := districtPattern.FindStringSubmatch(text); m != nil {
		h.District = m[1]
	}
	if m := areaCodePattern.FindStringSubmatch(text); m != nil {
		h.AreaCode = bangla.ToArabicDigits(m[1])
	}
	if m := areaNamePattern.FindStringSubmatch(text); m != nil {
		h.AreaName = cutAtHeaderLabel(m[1])
	}
	if m := wardPattern.FindStringSubmatch(text); m != nil {
		h.Ward = bangla.ToArabicDigits(m[1])
	} else if m := wardInPath.FindStringSubmatch(sourcePath); m != nil {
		h.Ward = bangla.ToArabicDigits(m[1])
	}
	return h
}

func cutAtHeaderLabel(s string) string {
	if loc := headerBoundary.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimSpace(s)
}
