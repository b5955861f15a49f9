package models

import "github.com/uptrace/bun"

// Jurisdiction is a governing body: city, town, village, school district, county.
type Jurisdiction struct {
	bun.BaseModel `bun:"table:jurisdictions,alias:j"`

	JurisdictionID   int     `bun:"jurisdiction_id,pk" json:"jurisdictionID"`
	JurisdictionName string  `bun:"jurisdiction_name,notnull,unique" json:"jurisdictionName"`
	JurisdictionType *string `bun:"jurisdiction_type" json:"jurisdictionType,omitempty"`
	Email            *string `bun:"email" json:"email,omitempty"`
	Phone            *string `bun:"phone" json:"phone,omitempty"`
	Address          *string `bun:"address" json:"address,omitempty"`
	City             *string `bun:"city" json:"city,omitempty"`
	State            *string `bun:"state" json:"state,omitempty"`
	Zip              *string `bun:"zip" json:"zip,omitempty"`
	Website          *string `bun:"website" json:"website,omitempty"`
}
