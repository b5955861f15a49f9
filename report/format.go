package report

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrShortBlock marks a block with too few lines to hold a title and a seat line.
	ErrShortBlock = errors.New("block has fewer than 2 lines")
	// ErrNoSeatLine marks a block whose second line matches no "vote for N" phrasing.
	ErrNoSeatLine = errors.New("no vote-for line")
	// ErrNoCandidates marks a race block with neither candidate rows nor write-in votes.
	ErrNoCandidates = errors.New("no candidate lines")
	// ErrReferendum marks a yes/no question; it is not a race for an office.
	ErrReferendum = errors.New("referendum")
	// ErrMissingHeader is returned when a report lacks the header its format requires.
	ErrMissingHeader = errors.New("report header not found")
	// ErrMissingStartMarker is returned when a configured start marker never appears.
	ErrMissingStartMarker = errors.New("start marker not found")
)

// Block is the lines of one race, in report order.
type Block struct {
	Index int
	Lines []string
}

// Segmented is a report split into race blocks.
// ElectionDate is zero when the format carries no date.
type Segmented struct {
	ElectionDate time.Time
	Blocks       []Block
}

// Candidate is one named candidate's tally within a race.
type Candidate struct {
	Name            string  `json:"name"`
	Votes           int     `json:"votes"`
	Percent         float64 `json:"percent"`
	PercentReported bool    `json:"percentReported"`
	Elected         bool    `json:"elected"`
}

// Race is a parsed race block. Candidates are ordered by votes, highest first.
type Race struct {
	Block        int         `json:"block"`
	Title        string      `json:"title"`
	Seats        int         `json:"seats"`
	Candidates   []Candidate `json:"candidates"`
	WriteInVotes int         `json:"writeInVotes"`
	TotalVotes   int         `json:"totalVotes"`
	// Unmatched holds lines after the seat line that were not candidate rows.
	Unmatched []string `json:"-"`
}

// Format is one generation of report layout.
type Format interface {
	Name() string
	Segment(text string) (*Segmented, error)
	ParseBlock(b Block) (*Race, error)
}

// Formats known by tag.
var formats = map[string]func() Format{
	"legacy":  func() Format { return NewLegacy() },
	"pdftext": func() Format { return NewPDFText("") },
}

// FormatFor returns the format registered under tag.
func FormatFor(tag string) (Format, error) {
	f, ok := formats[tag]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (want one of %v)", tag, FormatTags())
	}
	return f(), nil
}

// FormatTags lists the registered format tags in order.
func FormatTags() []string {
	tags := make([]string, 0, len(formats))
	for t := range formats {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
