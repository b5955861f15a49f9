package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocodems/elections/config"
	"github.com/cocodems/elections/db"
	"github.com/cocodems/elections/models"
	"github.com/cocodems/elections/names"
	"github.com/cocodems/elections/refdata"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	bdb, err := db.Setup(ctx, config.Database{Type: "sqlite", SQLitePath: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { bdb.Close() })
	require.NoError(t, db.CreateTables(ctx, bdb))
	return New(bdb)
}

func april(y, d int) time.Time {
	return time.Date(y, time.April, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestCreateElection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e := &models.Election{ElectionName: "Spring Election", ElectionDate: april(2025, 1)}
	require.NoError(t, s.CreateElection(ctx, e))
	assert.Equal(t, int64(20250401), e.ElectionID)

	got, err := s.FindElection(ctx, 20250401)
	require.NoError(t, err)
	assert.Equal(t, "Spring Election", got.ElectionName)

	err = s.CreateElection(ctx, &models.Election{ElectionName: "Again", ElectionDate: april(2025, 1)})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.FindElection(ctx, 20240402)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedAndReference(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	refs := []refdata.JurisdictionRef{{Name: "City of Lodi", ID: 12}, {Name: "Columbia County", ID: 1}}
	n, err := s.SeedJurisdictions(ctx, refs)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.SeedJurisdictions(ctx, refs)
	require.NoError(t, err)
	assert.Zero(t, n)

	terms := []refdata.TermRow{
		{Jurisdiction: "City of Lodi", Office: "Alderperson", Years: 2},
		{Jurisdiction: "City of Lodi", Office: "Mayor", Years: 2},
		{Jurisdiction: "Columbia County", Office: "Sheriff", Years: 4},
		{Jurisdiction: "Town of Nowhere", Office: "Clerk", Years: 2},
	}
	added, skipped, err := s.SeedOffices(ctx, terms)
	require.NoError(t, err)
	assert.Equal(t, int64(3), added)
	assert.Equal(t, []refdata.TermRow{terms[3]}, skipped)

	added, _, err = s.SeedOffices(ctx, terms)
	require.NoError(t, err)
	assert.Zero(t, added)

	j, err := s.FindJurisdiction(ctx, "  city OF lodi ")
	require.NoError(t, err)
	assert.Equal(t, 12, j.JurisdictionID)

	o, err := s.FindOffice(ctx, 12, "MAYOR")
	require.NoError(t, err)
	assert.Equal(t, "Mayor", o.OfficeName)
	assert.Equal(t, 2, o.TermYears)

	_, err = s.FindOffice(ctx, 1, "Mayor")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindJurisdiction(ctx, "Village of Nowhere")
	assert.ErrorIs(t, err, ErrNotFound)

	years, ok, err := s.TermYears(ctx, "Columbia County", "Sheriff")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, years)

	years, ok, err = s.TermYears(ctx, "City of Portage", "Mayor")
	require.NoError(t, err)
	assert.True(t, ok, "falls back to the office name alone")
	assert.Equal(t, 2, years)

	_, ok, err = s.TermYears(ctx, "City of Lodi", "Dog Catcher")
	require.NoError(t, err)
	assert.False(t, ok)

	jurs, offices, err := s.ReferenceNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"City of Lodi", "Columbia County"}, jurs)
	assert.Equal(t, []string{"Alderperson", "Mayor", "Sheriff"}, offices)
}

func TestMatchIndividual(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	people := []*models.Individual{
		{FirstName: "John", MiddleName: strPtr("Quincy"), LastName: "Public", FullName: "John Quincy Public"},
		{FirstName: " JOHN ", MiddleName: strPtr("Q"), LastName: "Public", FullName: "John Q Public"},
		{FirstName: "Jane", LastName: "Doe", FullName: "Jane Doe"},
	}
	for _, p := range people {
		require.NoError(t, s.CreateIndividual(ctx, p))
		require.NotZero(t, p.ContactID)
	}

	cases := []struct {
		q    names.Query
		want int64
		ok   bool
	}{
		{names.Query{Pass: names.PassExactMiddle, First: "john", Middle: "q", Last: "public"}, people[1].ContactID, true},
		{names.Query{Pass: names.PassExactMiddle, First: "john", Middle: "quentin", Last: "public"}, 0, false},
		{names.Query{Pass: names.PassMiddleInitial, First: "john", Middle: "q", Last: "public"}, people[0].ContactID, true},
		{names.Query{Pass: names.PassFirstLast, First: "jane", Last: "doe"}, people[2].ContactID, true},
		{names.Query{Pass: names.PassFirstLast, First: "jane", Last: "roe"}, 0, false},
	}
	for _, tc := range cases {
		id, ok, err := s.MatchIndividual(ctx, tc.q)
		require.NoError(t, err)
		assert.Equal(t, tc.ok, ok, "%+v", tc.q)
		assert.Equal(t, tc.want, id, "%+v", tc.q)
	}

	people[2].Email = strPtr("jane@example.org")
	require.NoError(t, s.UpdateIndividual(ctx, people[2], "email"))
	got, err := s.FindIndividual(ctx, people[2].ContactID)
	require.NoError(t, err)
	require.NotNil(t, got.Email)
	assert.Equal(t, "jane@example.org", *got.Email)

	err = s.UpdateIndividual(ctx, &models.Individual{ContactID: 999}, "email")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertRaceAndReplaceCampaigns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	race := &models.Race{
		RaceID: 202504010007, ElectionID: 20250401, JurisdictionID: 12, OfficeID: 7,
		RaceName: "Mayor City of Lodi", Jurisdiction: "City of Lodi", OfficeName: "Mayor",
		Seats: 1, TermYears: 2, TotalVotes: 100,
	}
	created, err := s.UpsertRace(ctx, race)
	require.NoError(t, err)
	assert.True(t, created)

	race.TotalVotes = 120
	created, err = s.UpsertRace(ctx, race)
	require.NoError(t, err)
	assert.False(t, created)

	campaign := func(name string, votes int) models.Campaign {
		return models.Campaign{
			ElectionID: 20250401, OfficeID: 7, CandidateName: name,
			Jurisdiction: "City of Lodi", OfficeName: "Mayor",
			VotesReceived: votes, TotalVotes: 120, ElectionDate: april(2025, 1),
		}
	}

	deleted, err := s.ReplaceCampaigns(ctx, race.RaceID, []models.Campaign{campaign("A", 70), campaign("B", 50)})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = s.ReplaceCampaigns(ctx, race.RaceID, []models.Campaign{campaign("A", 71)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	cs, err := s.RaceCampaigns(ctx, race.RaceID)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "A", cs[0].CandidateName)
	assert.Equal(t, 71, cs[0].VotesReceived)
	assert.Equal(t, race.RaceID, cs[0].RaceID)
}

func TestRunInTx_RollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.CreateElection(ctx, &models.Election{ElectionName: "x", ElectionDate: april(2024, 2)}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.FindElection(ctx, 20240402)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.CreateElection(ctx, &models.Election{ElectionName: "x", ElectionDate: april(2024, 2)})
	})
	require.NoError(t, err)
	_, err = s.FindElection(ctx, 20240402)
	assert.NoError(t, err)
}
