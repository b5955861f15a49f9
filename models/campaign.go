package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Campaign is one candidate's appearance and result in one race.
// Term dates are copied from the race so person pages need no join.
type Campaign struct {
	bun.BaseModel `bun:"table:campaigns,alias:cp"`

	CampaignID      int64      `bun:"campaign_id,pk,autoincrement" json:"campaignID"`
	RaceID          int64      `bun:"race_id,notnull" json:"raceID"`
	ElectionID      int64      `bun:"election_id,notnull" json:"electionID"`
	OfficeID        int        `bun:"office_id,notnull" json:"officeID"`
	ContactID       *int64     `bun:"contact_id" json:"contactID,omitempty"`
	CandidateName   string     `bun:"candidate_name,notnull" json:"candidateName"`
	Jurisdiction    string     `bun:"jurisdiction,notnull" json:"jurisdiction"`
	OfficeName      string     `bun:"office_name,notnull" json:"officeName"`
	VotesReceived   int        `bun:"votes_received,notnull,default:0" json:"votesReceived"`
	PercentReceived float64    `bun:"percent_received,notnull,default:0" json:"percentReceived"`
	TotalVotes      int        `bun:"total_votes,notnull,default:0" json:"totalVotes"`
	Elected         int        `bun:"elected,notnull,default:0" json:"elected"`
	ElectionDate    time.Time  `bun:"election_date,notnull,type:date" json:"electionDate"`
	TermStartDate   *time.Time `bun:"term_start_date,type:date" json:"termStartDate,omitempty"`
	ReelectionDate  *time.Time `bun:"reelection_date,type:date" json:"reelectionDate,omitempty"`
	TermEndDate     *time.Time `bun:"term_end_date,type:date" json:"termEndDate,omitempty"`
}
