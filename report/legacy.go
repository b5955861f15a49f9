package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	legacyHeader      = regexp.MustCompile(`(?is)SUMMARY.*?RUN DATE:\s*(\d{2}/\d{2}/\d{2}).*?\n\n`)
	legacyFooter      = regexp.MustCompile(`(?is)</PRE>\s*</HTML>`)
	legacyWrappedDist = regexp.MustCompile(`SCHOOL\n[ \t]+DISTRICT`)
	legacyCandidate   = regexp.MustCompile(`^(.+?)(?:\s*\.(?:\s*\.)*)?\s+(\d[\d,]*)\s+(\d*\.?\d+)%?$`)
)

const nonpartisanMarker = "(NONPARTISAN)"

// Legacy is the plain-text summary report wrapped in HTML remnants, with a
// "RUN DATE:" header, dot leaders and a percent column.
type Legacy struct {
	parser blockParser
	// LeadingBlocks is how many blocks after the header are dropped when the
	// report has no nonpartisan marker.
	LeadingBlocks int
}

// NewLegacy returns the legacy format with its accepted seat phrasings.
func NewLegacy() *Legacy {
	return &Legacy{
		LeadingBlocks: 2,
		parser: blockParser{
			seatPatterns: []*regexp.Regexp{
				regexp.MustCompile(`\(VOTE FOR\)\s+(\d+)`),
				regexp.MustCompile(`\(Vote for Not More Than \)\s+(\d+)`),
				regexp.MustCompile(`Vote for not more than\s+(\d+)`),
				regexp.MustCompile(`Vote for Not More than\s+(\d+)`),
				regexp.MustCompile(`VOTE FOR\s+(\d+)`),
			},
			candidate:      legacyCandidateLine,
			forceTitleCase: true,
		},
	}
}

func (l *Legacy) Name() string { return "legacy" }

func (l *Legacy) Segment(text string) (*Segmented, error) {
	text = NormalizeNewlines(text)
	text = legacyWrappedDist.ReplaceAllString(text, "SCHOOL DISTRICT")

	loc := legacyHeader.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, fmt.Errorf("%w: no SUMMARY ... RUN DATE: line", ErrMissingHeader)
	}
	date, err := time.Parse("01/02/06", text[loc[2]:loc[3]])
	if err != nil {
		return nil, fmt.Errorf("%w: bad run date: %v", ErrMissingHeader, err)
	}

	rules := SkipRules{StartMarker: nonpartisanMarker, SkipMarker: true, MarkerOptional: true}
	hasMarker := strings.Contains(strings.ToLower(text), strings.ToLower(nonpartisanMarker))
	if !hasMarker {
		text = text[loc[1]:]
		rules = SkipRules{}
	}
	text = legacyFooter.ReplaceAllString(text, "")

	blocks, err := rules.Split(text)
	if err != nil {
		return nil, err
	}
	if !hasMarker {
		if len(blocks) <= l.LeadingBlocks {
			blocks = nil
		} else {
			blocks = blocks[l.LeadingBlocks:]
		}
	}
	for i := range blocks {
		blocks[i].Index = i
	}
	return &Segmented{ElectionDate: date, Blocks: blocks}, nil
}

func (l *Legacy) ParseBlock(b Block) (*Race, error) {
	return l.parser.parse(b)
}

func legacyCandidateLine(line string) (candidateLine, bool) {
	m := legacyCandidate.FindStringSubmatch(line)
	if m == nil {
		return candidateLine{}, false
	}
	votes, ok := parseVotes(m[2])
	if !ok {
		return candidateLine{}, false
	}
	pct, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return candidateLine{}, false
	}
	return candidateLine{name: m[1], votes: votes, percent: pct, hasPct: true}, true
}
