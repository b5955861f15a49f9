package models

import (
	"fmt"
	"time"
)

// MaxOfficeID bounds office IDs so they fit in the low digits of a race ID.
const MaxOfficeID = 9999

// ElectionIDFor returns the election identifier for date as YYYYMMDD.
func ElectionIDFor(date time.Time) int64 {
	return int64(date.Year())*10000 + int64(date.Month())*100 + int64(date.Day())
}

// RaceIDFor composes a race identifier from its election and office.
// The same inputs always give the same ID, so re-ingesting a race updates it.
func RaceIDFor(electionID int64, officeID int) (int64, error) {
	if officeID <= 0 || officeID > MaxOfficeID {
		return 0, fmt.Errorf("office id %d out of range 1..%d", officeID, MaxOfficeID)
	}
	return electionID*10000 + int64(officeID), nil
}
