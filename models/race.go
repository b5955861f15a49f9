package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race is a single contested office within one election.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceID         int64      `bun:"race_id,pk" json:"raceID"`
	ElectionID     int64      `bun:"election_id,notnull" json:"electionID"`
	JurisdictionID int        `bun:"jurisdiction_id,notnull" json:"jurisdictionID"`
	OfficeID       int        `bun:"office_id,notnull" json:"officeID"`
	RaceName       string     `bun:"race_name,notnull" json:"raceName"`
	Jurisdiction   string     `bun:"jurisdiction,notnull" json:"jurisdiction"`
	OfficeName     string     `bun:"office_name,notnull" json:"officeName"`
	Seats          int        `bun:"seats,notnull" json:"seats"`
	TermYears      int        `bun:"term_years,notnull,default:0" json:"termYears"`
	TotalVotes     int        `bun:"total_votes,notnull,default:0" json:"totalVotes"`
	TermStartDate  *time.Time `bun:"term_start_date,type:date" json:"termStartDate,omitempty"`
	ReelectionDate *time.Time `bun:"reelection_date,type:date" json:"reelectionDate,omitempty"`
	TermEndDate    *time.Time `bun:"term_end_date,type:date" json:"termEndDate,omitempty"`

	Election *Election `bun:"rel:belongs-to,join:election_id=election_id" json:"-"`
}
