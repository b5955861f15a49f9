package report

import (
	"regexp"
	"strconv"
)

var (
	pdfWithPercent = regexp.MustCompile(`^(.+?)\s+(\d[\d,]*)\s+(\d+(?:\.\d+)?)%?$`)
	pdfVotesOnly   = regexp.MustCompile(`^(.+?)\s+(\d[\d,]*)$`)
)

// PDFText is text extracted line by line from the newer PDF summary reports.
// Races end at a "Precincts Reporting" line and the percent column is usually absent.
type PDFText struct {
	Rules  SkipRules
	parser blockParser
}

// NewPDFText returns the PDF text format. A non-empty startMarker discards
// everything before the first line containing it.
func NewPDFText(startMarker string) *PDFText {
	return &PDFText{
		Rules: SkipRules{
			DropExact:    []string{"TOTAL"},
			DropPrefix:   []string{"ELECTION SUMMARY"},
			DropContains: []string{"Unofficial Results Report", "SPRING ELECTION", "COLUMBIA COUNTY, WI"},
			BreakPrefix:  []string{"Precincts Reporting"},
			StartMarker:  startMarker,
		},
		parser: blockParser{
			seatPatterns: []*regexp.Regexp{
				regexp.MustCompile(`Vote For\s+(\d+)`),
				regexp.MustCompile(`(?i)^Vote\s+for\s+(\d+)\b`),
				regexp.MustCompile(`(?i)Vote for not more than\s+(\d+)`),
			},
			candidate: pdfCandidateLine,
		},
	}
}

func (p *PDFText) Name() string { return "pdftext" }

func (p *PDFText) Segment(text string) (*Segmented, error) {
	blocks, err := p.Rules.Split(text)
	if err != nil {
		return nil, err
	}
	return &Segmented{Blocks: blocks}, nil
}

func (p *PDFText) ParseBlock(b Block) (*Race, error) {
	return p.parser.parse(b)
}

func pdfCandidateLine(line string) (candidateLine, bool) {
	if m := pdfWithPercent.FindStringSubmatch(line); m != nil {
		votes, ok := parseVotes(m[2])
		pct, err := strconv.ParseFloat(m[3], 64)
		if ok && err == nil {
			return candidateLine{name: m[1], votes: votes, percent: pct, hasPct: true}, true
		}
	}
	if m := pdfVotesOnly.FindStringSubmatch(line); m != nil {
		if votes, ok := parseVotes(m[2]); ok {
			return candidateLine{name: m[1], votes: votes}, true
		}
	}
	return candidateLine{}, false
}
