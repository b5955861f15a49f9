package store

import (
	"context"

	"github.com/cocodems/elections/models"
	"github.com/cocodems/elections/names"
)

// MatchIndividual runs one name-matching pass. Ties go to the lowest
// contact ID.
func (s *Store) MatchIndividual(ctx context.Context, q names.Query) (int64, bool, error) {
	var ids []int64
	sel := s.idb.NewSelect().
		Model((*models.Individual)(nil)).
		Column("contact_id").
		Where("LOWER(TRIM(first_name)) = ?", q.First).
		Where("LOWER(TRIM(last_name)) = ?", q.Last).
		OrderExpr("contact_id ASC").
		Limit(1)

	switch q.Pass {
	case names.PassExactMiddle:
		sel = sel.Where("LOWER(TRIM(COALESCE(middle_name, ''))) = ?", q.Middle)
	case names.PassMiddleInitial:
		sel = sel.Where("SUBSTR(LOWER(TRIM(COALESCE(middle_name, ''))), 1, 1) = ?", q.Middle)
	}

	if err := sel.Scan(ctx, &ids); err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

// CreateIndividual inserts ind and sets its ContactID.
func (s *Store) CreateIndividual(ctx context.Context, ind *models.Individual) error {
	_, err := s.idb.NewInsert().Model(ind).Returning("contact_id").Exec(ctx)
	return err
}

// FindIndividual returns the person with contactID.
func (s *Store) FindIndividual(ctx context.Context, contactID int64) (*models.Individual, error) {
	ind := new(models.Individual)
	if err := s.idb.NewSelect().Model(ind).Where("i.contact_id = ?", contactID).Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return ind, nil
}

// UpdateIndividual writes the given columns of ind.
func (s *Store) UpdateIndividual(ctx context.Context, ind *models.Individual, columns ...string) error {
	res, err := s.idb.NewUpdate().Model(ind).Column(columns...).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
