package ingest

import "time"

// FourthMondayOfApril is the day a spring-elected official takes office.
func FourthMondayOfApril(year int) time.Time {
	april1 := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	offset := 21 + (int(time.Monday)-int(april1.Weekday())+7)%7
	return april1.AddDate(0, 0, offset)
}

// FirstTuesdayOfApril is the spring election day.
func FirstTuesdayOfApril(year int) time.Time {
	april1 := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	return april1.AddDate(0, 0, (int(time.Tuesday)-int(april1.Weekday())+7)%7)
}

// TermDates are the derived dates of a race. Reelection and End are nil when
// the term length is unknown.
type TermDates struct {
	Start      time.Time
	Reelection *time.Time
	End        *time.Time
}

// TermDatesFor derives term dates from the election year and term length.
func TermDatesFor(electionDate time.Time, termYears int) TermDates {
	year := electionDate.Year()
	td := TermDates{Start: FourthMondayOfApril(year)}
	if termYears > 0 {
		re := FirstTuesdayOfApril(year + termYears)
		end := FourthMondayOfApril(year + termYears)
		td.Reelection, td.End = &re, &end
	}
	return td
}
