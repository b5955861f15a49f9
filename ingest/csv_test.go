package ingest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []Row {
	id := int64(42)
	td := TermDatesFor(day(2025, time.April, 1), 3)
	return []Row{
		{
			Jurisdiction:  "Rio Community School District",
			Office:        "School Board Member",
			RaceName:      "School Board Member Rio Community School District",
			Seats:         3,
			CandidateName: "Ann Lee",
			Votes:         500,
			Percent:       40,
			TotalVotes:    1250,
			Elected:       true,
			ElectionDate:  day(2025, time.April, 1),
			TermYears:     3,
			TermStart:     &td.Start,
			Reelection:    td.Reelection,
			TermEnd:       td.End,
			FirstName:     "Ann",
			LastName:      "Lee",
			ContactID:     &id,
		},
		{
			Jurisdiction:  "Rio Community School District",
			Office:        "School Board Member",
			RaceName:      "School Board Member Rio Community School District",
			Seats:         3,
			CandidateName: "Bo Park",
			Votes:         300,
			Percent:       24,
			TotalVotes:    1250,
			ElectionDate:  day(2025, time.April, 1),
			TermStart:     &td.Start,
			FirstName:     "Bo",
			LastName:      "Park",
		},
	}
}

func TestWriteReadCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
	assert.Equal(t, "Rio Community School District,School Board Member,School Board Member Rio Community School District,3,Ann Lee,500,40,1250,1,2025-04-01,3,2025-04-28,2028-04-04,2028-04-24,Ann,,Lee,42", lines[1])

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleRows(), got)
}

func TestReadCSV_LooseInput(t *testing.T) {
	in := "\ufeffCandidate Name,Office,Jurisdiction,Votes Received,Elected,Election Date,Contact ID\n" +
		"Jane Doe,Mayor,City of Lodi,\"1,200\",yes,4/7/20,\n" +
		",,,,,,\n" +
		"John Roe,Mayor,City of Lodi,790,0,04/07/2020,17\n"

	rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1200, rows[0].Votes)
	assert.True(t, rows[0].Elected)
	assert.Equal(t, day(2020, time.April, 7), rows[0].ElectionDate)
	assert.Equal(t, "Mayor City of Lodi", rows[0].RaceName)
	assert.Nil(t, rows[0].ContactID)

	require.NotNil(t, rows[1].ContactID)
	assert.Equal(t, int64(17), *rows[1].ContactID)
	assert.Equal(t, rows[0].RaceKey(), rows[1].RaceKey())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("Jurisdiction,Office\nA,B\n"))
	assert.ErrorContains(t, err, `missing column "Candidate Name"`)

	_, err = ReadCSV(strings.NewReader("Jurisdiction,Office,Candidate Name,Votes Received,Elected,Election Date\nA,B,C,many,1,2024-04-02\n"))
	assert.ErrorContains(t, err, "line 2: votes received")

	_, err = ReadCSV(strings.NewReader("Jurisdiction,Office,Candidate Name,Votes Received,Elected,Election Date\nA,B,C,1,maybe,2024-04-02\n"))
	assert.ErrorContains(t, err, "elected")
}

func TestGroup(t *testing.T) {
	rows := sampleRows()
	other := rows[0]
	other.Office = "Mayor"
	other.Jurisdiction = "City of Lodi"

	groups := Group([]Row{rows[0], other, rows[1]})
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Equal(t, "Mayor", groups[1][0].Office)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Columns, got[0])
	assert.Equal(t, "Ann Lee", got[1][4])
	assert.Equal(t, "500", got[1][5])
	assert.Equal(t, "1", got[1][8])
	assert.Equal(t, "42", got[1][17])
}
