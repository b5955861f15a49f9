package models

import "github.com/uptrace/bun"

// Individual is the canonical identity of a candidate or officeholder.
type Individual struct {
	bun.BaseModel `bun:"table:individuals,alias:i"`

	ContactID           int64   `bun:"contact_id,pk,autoincrement" json:"contactID"`
	FirstName           string  `bun:"first_name,notnull" json:"firstName"`
	MiddleName          *string `bun:"middle_name" json:"middleName,omitempty"`
	LastName            string  `bun:"last_name,notnull" json:"lastName"`
	FullName            string  `bun:"full_name,notnull" json:"fullName"`
	Email               *string `bun:"email" json:"email,omitempty"`
	Phone               *string `bun:"phone" json:"phone,omitempty"`
	Address             *string `bun:"address" json:"address,omitempty"`
	City                *string `bun:"city" json:"city,omitempty"`
	Zip                 *string `bun:"zip" json:"zip,omitempty"`
	State               *string `bun:"state" json:"state,omitempty"`
	CandidateStatus     *string `bun:"candidate_status" json:"candidateStatus,omitempty"`
	PartyAffiliation    *string `bun:"party_affiliation" json:"partyAffiliation,omitempty"`
	DemocraticAlignment *string `bun:"democratic_alignment" json:"democraticAlignment,omitempty"`
	Area                *string `bun:"area" json:"area,omitempty"`
	Notes               *string `bun:"notes" json:"notes,omitempty"`
}
