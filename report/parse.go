package report

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// candidateLine is one matched candidate row before name cleaning.
type candidateLine struct {
	name    string
	votes   int
	percent float64
	hasPct  bool
}

// blockParser holds the per-format pieces of block parsing.
type blockParser struct {
	seatPatterns   []*regexp.Regexp
	candidate      func(line string) (candidateLine, bool)
	forceTitleCase bool
}

var writeInNames = map[string]bool{
	"write-in": true, "write-ins": true, "write in": true,
	"write-in totals": true, "write-in total": true,
}

var referendumNames = map[string]bool{"yes": true, "no": true}

func (p blockParser) parse(b Block) (*Race, error) {
	if len(b.Lines) < 2 {
		return nil, ErrShortBlock
	}

	race := &Race{
		Block: b.Index,
		Title: FixCase(strings.Join(strings.Fields(b.Lines[0]), " "), p.forceTitleCase),
	}

	seats, ok := matchSeats(p.seatPatterns, b.Lines[1])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSeatLine, b.Lines[1])
	}
	race.Seats = seats

	var named []Candidate
	for _, line := range b.Lines[2:] {
		cl, ok := p.candidate(line)
		if !ok {
			race.Unmatched = append(race.Unmatched, line)
			continue
		}
		name := CleanCandidateName(cl.name)
		if writeInNames[strings.ToLower(name)] {
			race.WriteInVotes += cl.votes
			continue
		}
		named = append(named, Candidate{
			Name:            name,
			Votes:           cl.votes,
			Percent:         cl.percent,
			PercentReported: cl.hasPct,
		})
	}

	if isReferendum(race.Title, named) {
		return nil, fmt.Errorf("%w: %q", ErrReferendum, race.Title)
	}

	for _, c := range named {
		if !referendumNames[strings.ToLower(c.Name)] {
			race.Candidates = append(race.Candidates, c)
		}
	}
	if len(race.Candidates) == 0 && race.WriteInVotes == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoCandidates, race.Title)
	}
	Finalize(race)
	return race, nil
}

func matchSeats(patterns []*regexp.Regexp, line string) (int, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

func isReferendum(title string, cands []Candidate) bool {
	if strings.Contains(strings.ToLower(title), "referendum") {
		return true
	}
	if len(cands) == 0 {
		return false
	}
	for _, c := range cands {
		if !referendumNames[strings.ToLower(c.Name)] {
			return false
		}
	}
	return true
}

// Finalize computes total votes, fills in missing percents and marks winners.
func Finalize(r *Race) {
	total := r.WriteInVotes
	for _, c := range r.Candidates {
		total += c.Votes
	}
	r.TotalVotes = total

	for i := range r.Candidates {
		c := &r.Candidates[i]
		if !c.PercentReported {
			c.Percent = PercentOf(c.Votes, total)
		}
	}
	MarkElected(r.Candidates, r.Seats)
}

// PercentOf returns votes as a percentage of total, rounded to 2 decimals.
func PercentOf(votes, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(total)*100*100) / 100
}

// MarkElected sorts cands by votes, highest first, and flags the top seats
// as elected. Every candidate tied with the last winning vote count is also
// elected, so a tie at the cutoff elects more than seats candidates.
func MarkElected(cands []Candidate, seats int) {
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Votes > cands[j].Votes })
	for i := range cands {
		cands[i].Elected = false
	}
	if seats <= 0 || len(cands) == 0 {
		return
	}
	if len(cands) <= seats {
		for i := range cands {
			cands[i].Elected = true
		}
		return
	}
	cutoff := cands[seats-1].Votes
	for i := range cands {
		cands[i].Elected = cands[i].Votes >= cutoff
	}
}

func parseVotes(s string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n, err == nil
}
