package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// dateLayouts are accepted when reading; older hand-edited sheets use
// US short dates.
var dateLayouts = []string{dateLayout, "1/2/2006", "1/2/06"}

// requiredColumns must be present for a file to load.
var requiredColumns = []string{"Jurisdiction", "Office", "Candidate Name", "Votes Received", "Elected", "Election Date"}

// ParseDate reads a date in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Strings renders r in Columns order.
func (r Row) Strings() []string {
	return []string{
		r.Jurisdiction,
		r.Office,
		r.RaceName,
		strconv.Itoa(r.Seats),
		r.CandidateName,
		strconv.Itoa(r.Votes),
		strconv.FormatFloat(r.Percent, 'f', -1, 64),
		strconv.Itoa(r.TotalVotes),
		boolDigit(r.Elected),
		formatDate(&r.ElectionDate),
		optionalInt(r.TermYears),
		formatDate(r.TermStart),
		formatDate(r.Reelection),
		formatDate(r.TermEnd),
		r.FirstName,
		r.MiddleName,
		r.LastName,
		optionalID(r.ContactID),
	}
}

// WriteCSV writes a header line and one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads canonical rows. Columns are matched by header name, so
// reviewers may reorder them or drop the optional ones.
func ReadCSV(src io.Reader) ([]Row, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty results file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[strings.ToLower(name)]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := col[strings.ToLower(name)]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if strings.Join(rec, "") == "" {
			continue
		}
		r, err := parseRow(get)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func parseRow(get func(string) string) (Row, error) {
	var (
		r   Row
		err error
	)
	r.Jurisdiction = get("Jurisdiction")
	r.Office = get("Office")
	r.RaceName = get("Race Name")
	if r.RaceName == "" {
		r.RaceName = strings.TrimSpace(r.Office + " " + r.Jurisdiction)
	}
	r.CandidateName = get("Candidate Name")
	r.FirstName = get("First Name")
	r.MiddleName = get("Middle Name")
	r.LastName = get("Last Name")

	if r.Seats, err = optionalAtoi(get("Number of Seats")); err != nil {
		return r, fmt.Errorf("number of seats: %w", err)
	}
	if r.Votes, err = optionalAtoi(get("Votes Received")); err != nil {
		return r, fmt.Errorf("votes received: %w", err)
	}
	if r.TotalVotes, err = optionalAtoi(get("Total Votes")); err != nil {
		return r, fmt.Errorf("total votes: %w", err)
	}
	if r.TermYears, err = optionalAtoi(get("Term (years)")); err != nil {
		return r, fmt.Errorf("term: %w", err)
	}
	if p := strings.TrimSuffix(get("Percent Received"), "%"); p != "" {
		if r.Percent, err = strconv.ParseFloat(p, 64); err != nil {
			return r, fmt.Errorf("percent received: %w", err)
		}
	}
	if r.Elected, err = parseElected(get("Elected")); err != nil {
		return r, err
	}
	if r.ElectionDate, err = ParseDate(get("Election Date")); err != nil {
		return r, fmt.Errorf("election date: %w", err)
	}
	for _, d := range []struct {
		col string
		dst **time.Time
	}{
		{"Office Start Date", &r.TermStart},
		{"Re-Election Date", &r.Reelection},
		{"Term End Date", &r.TermEnd},
	} {
		v := get(d.col)
		if v == "" {
			continue
		}
		t, err := ParseDate(v)
		if err != nil {
			return r, fmt.Errorf("%s: %w", strings.ToLower(d.col), err)
		}
		*d.dst = &t
	}
	if v := get("Contact ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return r, fmt.Errorf("contact id: %w", err)
		}
		r.ContactID = &id
	}
	return r, nil
}

func parseElected(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("elected: unrecognized value %q", s)
}

func optionalAtoi(s string) (int, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func optionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
