// Package ingest turns parsed reports into canonical result rows and reads
// and writes those rows as CSV or XLSX.
package ingest

import (
	"strings"
	"time"
)

// Columns are the canonical row headers, in file order.
var Columns = []string{
	"Jurisdiction",
	"Office",
	"Race Name",
	"Number of Seats",
	"Candidate Name",
	"Votes Received",
	"Percent Received",
	"Total Votes",
	"Elected",
	"Election Date",
	"Term (years)",
	"Office Start Date",
	"Re-Election Date",
	"Term End Date",
	"First Name",
	"Middle Name",
	"Last Name",
	"Contact ID",
}

// Row is one candidacy in canonical form.
type Row struct {
	Jurisdiction  string
	Office        string
	RaceName      string
	Seats         int
	CandidateName string
	Votes         int
	Percent       float64
	TotalVotes    int
	Elected       bool
	ElectionDate  time.Time
	// TermYears is zero when unknown.
	TermYears  int
	TermStart  *time.Time
	Reelection *time.Time
	TermEnd    *time.Time
	FirstName  string
	MiddleName string
	LastName   string
	ContactID  *int64
}

// RaceKey groups rows of the same race: jurisdiction, office and election date.
func (r Row) RaceKey() string {
	return strings.ToLower(strings.Join([]string{
		strings.TrimSpace(r.Jurisdiction),
		strings.TrimSpace(r.Office),
		r.ElectionDate.Format(dateLayout),
	}, "|"))
}

// Group splits rows by RaceKey, keeping first-seen race order.
func Group(rows []Row) [][]Row {
	idx := map[string]int{}
	var out [][]Row
	for _, r := range rows {
		k := r.RaceKey()
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], r)
	}
	return out
}
