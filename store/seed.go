package store

import (
	"context"
	"errors"

	"github.com/cocodems/elections/models"
	"github.com/cocodems/elections/refdata"
)

const seedBatchSize = 500

// bulkInsert inserts a batch, skipping rows that already exist so re-runs are
// harmless.
func bulkInsert[T any](ctx context.Context, s *Store, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res, err := s.idb.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func inBatches[T any](ctx context.Context, s *Store, rows []T) (int64, error) {
	var total int64
	for start := 0; start < len(rows); start += seedBatchSize {
		end := min(start+seedBatchSize, len(rows))
		n, err := bulkInsert(ctx, s, rows[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// SeedJurisdictions inserts jurisdictions that are not already present and
// returns how many were added.
func (s *Store) SeedJurisdictions(ctx context.Context, refs []refdata.JurisdictionRef) (int64, error) {
	rows := make([]models.Jurisdiction, 0, len(refs))
	for _, r := range refs {
		rows = append(rows, models.Jurisdiction{JurisdictionID: r.ID, JurisdictionName: r.Name})
	}
	return inBatches(ctx, s, rows)
}

// SeedOffices inserts an office for every term row whose jurisdiction is
// known and whose office is not yet recorded there. Rows naming an unknown
// jurisdiction are returned as skipped.
func (s *Store) SeedOffices(ctx context.Context, terms []refdata.TermRow) (added int64, skipped []refdata.TermRow, err error) {
	var rows []models.Office
	for _, t := range terms {
		j, err := s.FindJurisdiction(ctx, t.Jurisdiction)
		if errors.Is(err, ErrNotFound) {
			skipped = append(skipped, t)
			continue
		}
		if err != nil {
			return 0, nil, err
		}
		if _, err := s.FindOffice(ctx, j.JurisdictionID, t.Office); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return 0, nil, err
		}
		rows = append(rows, models.Office{
			JurisdictionID: j.JurisdictionID,
			Jurisdiction:   j.JurisdictionName,
			OfficeName:     t.Office,
			Seats:          1,
			TermYears:      t.Years,
		})
	}
	added, err = inBatches(ctx, s, rows)
	return added, skipped, err
}
