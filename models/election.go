package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Election is one election day. ElectionID is derived from the date.
type Election struct {
	bun.BaseModel `bun:"table:elections,alias:e"`

	ElectionID   int64     `bun:"election_id,pk" json:"electionID"`
	ElectionName string    `bun:"election_name,notnull" json:"electionName"`
	ElectionDate time.Time `bun:"election_date,notnull,type:date,unique" json:"electionDate"`
}
