package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const legacyReport = "<HTML><PRE>\r\n" +
	"COLUMBIA COUNTY SUMMARY REPORT\r\n" +
	"RUN DATE:04/07/20 11:52 PM\r\n" +
	"\r\n" +
	"PRECINCTS COUNTED (OF 52) . . . . .  52  100.00\r\n" +
	"\r\n" +
	"BALLOTS CAST - TOTAL. . . . . . .  9,999\r\n" +
	"\r\n" +
	"MAYOR CITY OF PORTAGE\r\n" +
	"Vote for not more than  1\r\n" +
	"JANE DOE. . . . . . . .  1,200  60.00\r\n" +
	"JOHN ROE. . . . . . . .    790  39.50\r\n" +
	"WRITE-IN. . . . . . . .     10    .50\r\n" +
	"\r\n" +
	"SCHOOL BOARD MEMBER PARDEEVILLE AREA SCHOOL\r\n" +
	"          DISTRICT\r\n" +
	"\r\n" +
	"ALDERPERSON CITY OF LODI\r\n" +
	"(VOTE FOR)  2\r\n" +
	"AMY ADAMS . . . . .  300  40.00\r\n" +
	"BOB BROWN . . . . .  300  40.00\r\n" +
	"CAL CLARK . . . . .  150  20.00\r\n" +
	"</PRE></HTML>\r\n"

func TestLegacySegment(t *testing.T) {
	seg, err := NewLegacy().Segment(legacyReport)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2020, time.April, 7, 0, 0, 0, 0, time.UTC), seg.ElectionDate)
	require.Len(t, seg.Blocks, 3)
	assert.Equal(t, "MAYOR CITY OF PORTAGE", seg.Blocks[0].Lines[0])
	assert.Equal(t, []string{"SCHOOL BOARD MEMBER PARDEEVILLE AREA SCHOOL DISTRICT"}, seg.Blocks[1].Lines)
	assert.Equal(t, 2, seg.Blocks[2].Index)
}

func TestLegacyParseDocument(t *testing.T) {
	doc, err := Parse(legacyReport, NewLegacy(), zap.NewNop())
	require.NoError(t, err)

	require.Len(t, doc.Races, 2)
	assert.Equal(t, 1, doc.Skipped)

	mayor := doc.Races[0]
	assert.Equal(t, "Mayor City of Portage", mayor.Title)
	assert.Equal(t, 1, mayor.Seats)
	assert.Equal(t, 10, mayor.WriteInVotes)
	assert.Equal(t, 2000, mayor.TotalVotes)
	require.Len(t, mayor.Candidates, 2)
	assert.Equal(t, "Jane Doe", mayor.Candidates[0].Name)
	assert.True(t, mayor.Candidates[0].Elected)
	assert.False(t, mayor.Candidates[1].Elected)
	assert.InDelta(t, 39.5, mayor.Candidates[1].Percent, 0.001)

	alder := doc.Races[1]
	assert.Equal(t, "Alderperson City of Lodi", alder.Title)
	assert.Equal(t, 2, electedCount(alder.Candidates))
}

func TestLegacySegment_NonpartisanMarker(t *testing.T) {
	text := "<HTML><PRE>\n" +
		"SUMMARY REPORT   RUN DATE:11/08/22\n" +
		"\n" +
		"GOVERNOR\n" +
		"VOTE FOR 1\n" +
		"SOMEONE (DEM). . . .  10  100.00\n" +
		"\n" +
		"   (NONPARTISAN)\n" +
		"SHERIFF\n" +
		"VOTE FOR 1\n" +
		"ROGER BROOKS. . . .  10  100.00\n" +
		"</PRE></HTML>\n"

	seg, err := NewLegacy().Segment(text)
	require.NoError(t, err)
	require.Len(t, seg.Blocks, 1)
	assert.Equal(t, "SHERIFF", seg.Blocks[0].Lines[0])
}

func TestLegacySegment_MissingHeader(t *testing.T) {
	_, err := NewLegacy().Segment("MAYOR\nVOTE FOR 1\nA. . . 1 100.00\n")
	assert.ErrorIs(t, err, ErrMissingHeader)
}

const pdfReport = "Columbia County Unofficial Results Report\n" +
	"ELECTION SUMMARY UNOFFICIAL RESULTS\n" +
	"2024 PRESIDENTIAL PREFERENCE AND SPRING ELECTION\n" +
	"APRIL 2, 2024 COLUMBIA COUNTY, WI\n" +
	"TOTAL\n" +
	"Circuit Court Judge Branch 3 Columbia County\n" +
	"Vote For 1\n" +
	"Troy Cross 9,000\n" +
	"Write-In Totals 50\n" +
	"Precincts Reporting 52 of 52\n" +
	"School Board Member Rio Community School District\n" +
	"Vote For 3\n" +
	"Jane Doe 500\n" +
	"John Roe 450\n" +
	"Sam Poe 300\n" +
	"Precincts Reporting 4 of 4\n" +
	"Orphan\n"

func TestPDFTextParseDocument(t *testing.T) {
	doc, err := Parse(pdfReport, NewPDFText(""), zap.NewNop())
	require.NoError(t, err)

	assert.True(t, doc.ElectionDate.IsZero())
	require.Len(t, doc.Races, 2)
	assert.Equal(t, 1, doc.Skipped)

	judge := doc.Races[0]
	assert.Equal(t, "Circuit Court Judge Branch 3 Columbia County", judge.Title)
	assert.Equal(t, 9050, judge.TotalVotes)
	require.Len(t, judge.Candidates, 1)
	assert.InDelta(t, 99.45, judge.Candidates[0].Percent, 0.0001)
	assert.True(t, judge.Candidates[0].Elected)
}

func TestPDFText_StartMarker(t *testing.T) {
	doc, err := Parse(pdfReport, NewPDFText("School Board Member"), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, doc.Races, 1)
	assert.True(t, strings.HasPrefix(doc.Races[0].Title, "School Board Member"))

	_, err = Parse(pdfReport, NewPDFText("Not In This Report"), zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingStartMarker)
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("legacy")
	require.NoError(t, err)
	assert.Equal(t, "legacy", f.Name())

	_, err = FormatFor("nope")
	assert.Error(t, err)
	assert.Equal(t, []string{"legacy", "pdftext"}, FormatTags())
}

func TestPDFTextParse_BarePercentColumn(t *testing.T) {
	text := "Mayor City of Lodi\n" +
		"Vote For 1\n" +
		"Jane Public 1,234 56.78\n" +
		"John Roe 940 43.22\n" +
		"Precincts Reporting 5 of 5\n" +
		"Town Clerk Town of Arlington\n" +
		"Vote For 1\n" +
		"results pending\n" +
		"Precincts Reporting 1 of 1\n"

	core, logs := observer.New(zap.WarnLevel)
	doc, err := Parse(text, NewPDFText(""), zap.New(core))
	require.NoError(t, err)

	require.Len(t, doc.Races, 1)
	assert.Equal(t, 1, doc.Skipped, "a race with no candidates is dropped")
	mayor := doc.Races[0]
	require.Len(t, mayor.Candidates, 2)
	assert.Equal(t, "Jane Public", mayor.Candidates[0].Name)
	assert.InDelta(t, 56.78, mayor.Candidates[0].Percent, 0.0001)
	assert.True(t, mayor.Candidates[0].Elected)
	assert.Equal(t, 2174, mayor.TotalVotes)

	dropped := logs.FilterMessage("skipping unparseable block").All()
	require.Len(t, dropped, 1)
	assert.Contains(t, dropped[0].ContextMap()["error"], ErrNoCandidates.Error())
}

func TestParse_WarnsOnNonCandidateLines(t *testing.T) {
	text := "Mayor City of Lodi\n" +
		"Vote For 1\n" +
		"Jane Public 1,234\n" +
		"Provisional ballots pending\n" +
		"Precincts Reporting 5 of 5\n"

	core, logs := observer.New(zap.WarnLevel)
	doc, err := Parse(text, NewPDFText(""), zap.New(core))
	require.NoError(t, err)
	require.Len(t, doc.Races, 1)
	assert.Equal(t, 1, doc.UnmatchedLines)

	warned := logs.FilterMessage("skipping non-candidate line").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "Provisional ballots pending", warned[0].ContextMap()["line"])
	assert.Equal(t, "Mayor City of Lodi", warned[0].ContextMap()["race"])
}
