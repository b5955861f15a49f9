package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cocodems/elections/classify"
	"github.com/cocodems/elections/names"
	"github.com/cocodems/elections/refdata"
	"github.com/cocodems/elections/report"
)

// ErrNoElectionDate is returned when neither the report nor the caller
// supplies an election date.
var ErrNoElectionDate = errors.New("election date unknown")

// DefaultExcludedRaces are state and federal race title prefixes. The county
// database only tracks local offices.
var DefaultExcludedRaces = []string{
	"Court of Appeals Judge",
	"Justice of the Supreme Court",
	"President of the United States",
	"Presidential Preference Vote",
	"State Superintendent",
	"State Senator",
	"Attorney General",
	"Governor /",
	"Governor Statewide",
	"Governor/lieutenant Governor",
	"President Statewide",
	"Representative in Congress",
	"Representative to Assembly",
	"Representative to the Assembly",
	"Secretary of State",
	"State Treasurer",
	"United States Senator",
}

// TermLookup finds the term length of an office.
type TermLookup interface {
	TermYears(ctx context.Context, jurisdiction, office string) (years int, found bool, err error)
}

// StaticTerms serves term lengths from the election terms table.
type StaticTerms refdata.Terms

// TermYears implements TermLookup.
func (t StaticTerms) TermYears(_ context.Context, jurisdiction, office string) (int, bool, error) {
	years, ok := refdata.Terms(t).Lookup(jurisdiction, office)
	return years, ok, nil
}

// Pipeline turns parsed reports into canonical rows.
type Pipeline struct {
	Classifier *classify.Classifier
	Resolver   *names.Resolver
	// Terms may be nil; every term is then unknown.
	Terms    TermLookup
	Excluded []string
	Log      *zap.Logger
}

// Stats summarizes one Rows call.
type Stats struct {
	Races    int
	Excluded int
	Rows     int
	Resolved int
}

// Rows classifies every race in doc and resolves every candidate. date
// overrides the report's own date when set.
func (p *Pipeline) Rows(ctx context.Context, doc *report.Document, date time.Time) ([]Row, Stats, error) {
	var st Stats
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	if date.IsZero() {
		date = doc.ElectionDate
	}
	if date.IsZero() {
		return nil, st, ErrNoElectionDate
	}

	terms := map[string]int{}
	var rows []Row
	for _, race := range doc.Races {
		if p.excluded(race.Title) {
			log.Info("skipping non-local race", zap.String("title", race.Title))
			st.Excluded++
			continue
		}
		st.Races++

		for _, c := range race.Candidates {
			cls := p.Classifier.ClassifyCandidate(race.Title, c.Name)
			if cls.Jurisdiction == "" {
				log.Warn("race title has no jurisdiction", zap.String("title", race.Title), zap.String("office", cls.Office))
			}

			key := refdata.TermKey(cls.Jurisdiction, cls.Office)
			years, ok := terms[key]
			if !ok {
				var err error
				if years, err = p.termYears(ctx, cls.Jurisdiction, cls.Office); err != nil {
					return nil, st, err
				}
				terms[key] = years
			}
			td := TermDatesFor(date, years)

			res, err := p.Resolver.Resolve(ctx, c.Name)
			if err != nil {
				return nil, st, err
			}
			if res.ContactID != nil {
				st.Resolved++
			}

			rows = append(rows, Row{
				Jurisdiction:  cls.Jurisdiction,
				Office:        cls.Office,
				RaceName:      race.Title,
				Seats:         race.Seats,
				CandidateName: c.Name,
				Votes:         c.Votes,
				Percent:       c.Percent,
				TotalVotes:    race.TotalVotes,
				Elected:       c.Elected,
				ElectionDate:  date,
				TermYears:     years,
				TermStart:     &td.Start,
				Reelection:    td.Reelection,
				TermEnd:       td.End,
				FirstName:     res.First,
				MiddleName:    res.Middle,
				LastName:      res.Last,
				ContactID:     res.ContactID,
			})
		}
	}
	st.Rows = len(rows)
	return rows, st, nil
}

func (p *Pipeline) termYears(ctx context.Context, jurisdiction, office string) (int, error) {
	if p.Terms == nil {
		return 0, nil
	}
	years, ok, err := p.Terms.TermYears(ctx, jurisdiction, office)
	if err != nil {
		return 0, fmt.Errorf("term for %s / %s: %w", jurisdiction, office, err)
	}
	if !ok {
		return 0, nil
	}
	return years, nil
}

func (p *Pipeline) excluded(title string) bool {
	lower := strings.ToLower(title)
	for _, prefix := range p.Excluded {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}
