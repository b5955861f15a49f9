// Package reconcile loads canonical result rows into storage. One call is one
// transaction: any failure leaves storage as it was.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cocodems/elections/ingest"
	"github.com/cocodems/elections/models"
	"github.com/cocodems/elections/names"
	"github.com/cocodems/elections/refdata"
	"github.com/cocodems/elections/store"
)

var (
	// ErrUnknownJurisdiction means a row names a jurisdiction not in the reference table.
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
	// ErrUnknownOffice means a row names an office its jurisdiction does not have.
	ErrUnknownOffice = errors.New("unknown office")
	// ErrUnknownElection means the election does not exist and no name was given to create it.
	ErrUnknownElection = errors.New("unknown election")
	// ErrNoRows means there was nothing to load.
	ErrNoRows = errors.New("no rows to load")
)

// Runner runs a function inside one storage transaction.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error
}

// Options controls one load.
type Options struct {
	// ElectionName creates the election when it does not exist yet.
	ElectionName string
	// CreateMissingPersons adds an individual for every candidate no existing
	// person matches. Otherwise such campaigns have no contact.
	CreateMissingPersons bool
	Special              refdata.SpecialNames
	Standard             refdata.StandardNames
}

// Summary counts what a load did.
type Summary struct {
	Elections         []int64
	ElectionsCreated  int
	Races             int
	RacesCreated      int
	Campaigns         int
	CampaignsReplaced int64
	PeopleMatched     int
	PeopleCreated     int
	PeopleUnresolved  int
}

// Load writes rows in one transaction. Rows are grouped into races by
// jurisdiction, office and election date. Every race's jurisdiction and office
// must already exist; the first that does not aborts the whole load.
func Load(ctx context.Context, runner Runner, rows []ingest.Row, opts Options, log *zap.Logger) (*Summary, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	if log == nil {
		log = zap.NewNop()
	}

	var sum *Summary
	err := runner.RunInTx(ctx, func(ctx context.Context, tx store.Tx) error {
		l := &loader{
			tx:        tx,
			opts:      opts,
			log:       log,
			resolver:  names.NewResolver(tx, opts.Special, opts.Standard, log),
			elections: map[int64]bool{},
			sum:       &Summary{},
		}
		for _, group := range ingest.Group(rows) {
			if err := l.loadRace(ctx, group); err != nil {
				return err
			}
		}
		sum = l.sum
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}

type loader struct {
	tx        store.Tx
	opts      Options
	log       *zap.Logger
	resolver  *names.Resolver
	elections map[int64]bool
	sum       *Summary
}

func (l *loader) loadRace(ctx context.Context, group []ingest.Row) error {
	head := group[0]

	electionID, err := l.ensureElection(ctx, head.ElectionDate)
	if err != nil {
		return err
	}

	j, err := l.tx.FindJurisdiction(ctx, head.Jurisdiction)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %q (race %q)", ErrUnknownJurisdiction, head.Jurisdiction, head.RaceName)
	}
	if err != nil {
		return err
	}
	o, err := l.tx.FindOffice(ctx, j.JurisdictionID, head.Office)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %q in %q (race %q)", ErrUnknownOffice, head.Office, j.JurisdictionName, head.RaceName)
	}
	if err != nil {
		return err
	}

	raceID, err := models.RaceIDFor(electionID, o.OfficeID)
	if err != nil {
		return fmt.Errorf("race %q: %w", head.RaceName, err)
	}

	termYears := head.TermYears
	if termYears <= 0 {
		termYears = o.TermYears
	}
	td := ingest.TermDatesFor(head.ElectionDate, termYears)

	seats, total, votes := 0, head.TotalVotes, 0
	for _, r := range group {
		if r.Elected {
			seats++
		}
		votes += r.Votes
	}
	if total <= 0 {
		total = votes
	}

	race := &models.Race{
		RaceID:         raceID,
		ElectionID:     electionID,
		JurisdictionID: j.JurisdictionID,
		OfficeID:       o.OfficeID,
		RaceName:       head.RaceName,
		Jurisdiction:   j.JurisdictionName,
		OfficeName:     o.OfficeName,
		Seats:          seats,
		TermYears:      termYears,
		TotalVotes:     total,
		TermStartDate:  &td.Start,
		ReelectionDate: td.Reelection,
		TermEndDate:    td.End,
	}
	created, err := l.tx.UpsertRace(ctx, race)
	if err != nil {
		return fmt.Errorf("race %d: %w", raceID, err)
	}
	l.sum.Races++
	if created {
		l.sum.RacesCreated++
	}

	campaigns := make([]models.Campaign, 0, len(group))
	for _, r := range group {
		contactID, err := l.contact(ctx, r)
		if err != nil {
			return err
		}
		elected := 0
		if r.Elected {
			elected = 1
		}
		campaigns = append(campaigns, models.Campaign{
			RaceID:          raceID,
			ElectionID:      electionID,
			OfficeID:        o.OfficeID,
			ContactID:       contactID,
			CandidateName:   r.CandidateName,
			Jurisdiction:    j.JurisdictionName,
			OfficeName:      o.OfficeName,
			VotesReceived:   r.Votes,
			PercentReceived: r.Percent,
			TotalVotes:      total,
			Elected:         elected,
			ElectionDate:    r.ElectionDate,
			TermStartDate:   race.TermStartDate,
			ReelectionDate:  race.ReelectionDate,
			TermEndDate:     race.TermEndDate,
		})
	}

	deleted, err := l.tx.ReplaceCampaigns(ctx, raceID, campaigns)
	if err != nil {
		return err
	}
	l.sum.Campaigns += len(campaigns)
	l.sum.CampaignsReplaced += deleted

	l.log.Debug("race loaded",
		zap.Int64("race_id", raceID),
		zap.String("race", head.RaceName),
		zap.Int("seats", seats),
		zap.Int("campaigns", len(campaigns)),
		zap.Int64("replaced", deleted),
	)
	return nil
}

func (l *loader) ensureElection(ctx context.Context, date time.Time) (int64, error) {
	id := models.ElectionIDFor(date)
	if l.elections[id] {
		return id, nil
	}

	_, err := l.tx.FindElection(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		if l.opts.ElectionName == "" {
			return 0, fmt.Errorf("%w: %s", ErrUnknownElection, date.Format("2006-01-02"))
		}
		e := &models.Election{ElectionName: l.opts.ElectionName, ElectionDate: date}
		if err := l.tx.CreateElection(ctx, e); err != nil {
			return 0, err
		}
		l.log.Info("created election", zap.Int64("election_id", id), zap.String("name", e.ElectionName))
		l.sum.ElectionsCreated++
	default:
		return 0, err
	}

	l.elections[id] = true
	l.sum.Elections = append(l.sum.Elections, id)
	return id, nil
}

// contact returns the row's person, matching or creating one as configured.
func (l *loader) contact(ctx context.Context, r ingest.Row) (*int64, error) {
	if r.ContactID != nil {
		l.sum.PeopleMatched++
		return r.ContactID, nil
	}

	var rowParts *names.Parts
	if r.FirstName != "" || r.LastName != "" {
		rowParts = &names.Parts{First: r.FirstName, Middle: r.MiddleName, Last: r.LastName}
		id, pass, err := l.resolver.Match(ctx, *rowParts)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", r.CandidateName, err)
		}
		if pass != names.PassNone {
			l.sum.PeopleMatched++
			return &id, nil
		}
	}

	res, err := l.resolver.Resolve(ctx, r.CandidateName)
	if err != nil {
		return nil, err
	}
	if res.ContactID != nil {
		l.sum.PeopleMatched++
		return res.ContactID, nil
	}

	if !l.opts.CreateMissingPersons {
		l.sum.PeopleUnresolved++
		l.log.Debug("candidate not matched", zap.String("candidate", r.CandidateName))
		return nil, nil
	}

	parts := res.Parts
	if rowParts != nil {
		parts = *rowParts
	}
	ind := &models.Individual{
		FirstName: parts.First,
		LastName:  parts.Last,
		FullName:  names.Full(parts),
	}
	if parts.Middle != "" {
		ind.MiddleName = &parts.Middle
	}
	if err := l.tx.CreateIndividual(ctx, ind); err != nil {
		return nil, fmt.Errorf("create individual %q: %w", r.CandidateName, err)
	}
	// Matching is best effort; every created person is logged for duplicate review.
	l.log.Info("created individual",
		zap.Int64("contact_id", ind.ContactID),
		zap.String("candidate", r.CandidateName),
	)
	l.sum.PeopleCreated++
	id := ind.ContactID
	return &id, nil
}
