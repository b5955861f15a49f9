package models

import "github.com/uptrace/bun"

// Office is a role within a jurisdiction, e.g. Alderperson or School Board Member.
type Office struct {
	bun.BaseModel `bun:"table:offices,alias:o"`

	OfficeID       int     `bun:"office_id,pk,autoincrement" json:"officeID"`
	JurisdictionID int     `bun:"jurisdiction_id,notnull" json:"jurisdictionID"`
	Jurisdiction   string  `bun:"jurisdiction,notnull" json:"jurisdiction"`
	OfficeName     string  `bun:"office_name,notnull" json:"officeName"`
	OfficeFullName *string `bun:"office_full_name" json:"officeFullName,omitempty"`
	Seats          int     `bun:"seats,notnull,default:1" json:"seats"`
	TermYears      int     `bun:"term_years,notnull,default:0" json:"termYears"`
	TermStartMonth *int    `bun:"term_start_month" json:"termStartMonth,omitempty"`
	ElectionMonth  *int    `bun:"election_month" json:"electionMonth,omitempty"`
	Email          *string `bun:"email" json:"email,omitempty"`
	Phone          *string `bun:"phone" json:"phone,omitempty"`
	Address        *string `bun:"address" json:"address,omitempty"`
	City           *string `bun:"city" json:"city,omitempty"`
	State          *string `bun:"state" json:"state,omitempty"`
	Zip            *string `bun:"zip" json:"zip,omitempty"`
	Website        *string `bun:"website" json:"website,omitempty"`
}
