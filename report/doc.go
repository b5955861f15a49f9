// Package report turns the text of an election summary report into parsed races.
//
// A report is first segmented into per-race blocks of lines, then each block is
// parsed into a Race: title, seats to fill, candidate tallies and write-in total.
// Report generations differ in header noise, "vote for" wording and whether a
// percent column is printed; each generation is a Format selected by tag.
package report
