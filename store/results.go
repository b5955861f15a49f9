package store

import (
	"context"
	"fmt"

	"github.com/cocodems/elections/models"
)

// FindElection returns the election with electionID.
func (s *Store) FindElection(ctx context.Context, electionID int64) (*models.Election, error) {
	e := new(models.Election)
	err := s.idb.NewSelect().Model(e).Where("e.election_id = ?", electionID).Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// CreateElection inserts e, deriving its ID from its date. A second election
// on the same date is ErrConflict.
func (s *Store) CreateElection(ctx context.Context, e *models.Election) error {
	e.ElectionID = models.ElectionIDFor(e.ElectionDate)

	exists, err := s.idb.NewSelect().
		Model((*models.Election)(nil)).
		Where("election_id = ?", e.ElectionID).
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("election on %s: %w", e.ElectionDate.Format("2006-01-02"), ErrConflict)
	}

	if _, err := s.idb.NewInsert().Model(e).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("election on %s: %w", e.ElectionDate.Format("2006-01-02"), ErrConflict)
		}
		return err
	}
	return nil
}

// UpsertRace updates r if its ID exists, else inserts it.
func (s *Store) UpsertRace(ctx context.Context, r *models.Race) (bool, error) {
	exists, err := s.idb.NewSelect().
		Model((*models.Race)(nil)).
		Where("race_id = ?", r.RaceID).
		Exists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		_, err = s.idb.NewUpdate().Model(r).WherePK().Exec(ctx)
		return false, err
	}
	_, err = s.idb.NewInsert().Model(r).Exec(ctx)
	return err == nil, err
}

// ReplaceCampaigns deletes every campaign of raceID and inserts campaigns.
func (s *Store) ReplaceCampaigns(ctx context.Context, raceID int64, campaigns []models.Campaign) (int64, error) {
	res, err := s.idb.NewDelete().
		Model((*models.Campaign)(nil)).
		Where("race_id = ?", raceID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete campaigns of race %d: %w", raceID, err)
	}
	deleted, _ := res.RowsAffected()

	if len(campaigns) == 0 {
		return deleted, nil
	}
	for i := range campaigns {
		campaigns[i].RaceID = raceID
	}
	if _, err := s.idb.NewInsert().Model(&campaigns).Exec(ctx); err != nil {
		return deleted, fmt.Errorf("insert campaigns of race %d: %w", raceID, err)
	}
	return deleted, nil
}

// RaceCampaigns returns the campaigns of raceID, most votes first.
func (s *Store) RaceCampaigns(ctx context.Context, raceID int64) ([]models.Campaign, error) {
	var cs []models.Campaign
	err := s.idb.NewSelect().
		Model(&cs).
		Where("cp.race_id = ?", raceID).
		OrderExpr("cp.votes_received DESC, cp.campaign_id ASC").
		Scan(ctx)
	return cs, err
}
