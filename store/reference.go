package store

import (
	"context"
	"fmt"

	"github.com/cocodems/elections/models"
	"github.com/cocodems/elections/refdata"
)

// FindJurisdiction looks a jurisdiction up by name, ignoring case and
// surrounding space.
func (s *Store) FindJurisdiction(ctx context.Context, name string) (*models.Jurisdiction, error) {
	j := new(models.Jurisdiction)
	err := s.idb.NewSelect().
		Model(j).
		Where("LOWER(TRIM(j.jurisdiction_name)) = ?", refdata.NameKey(name)).
		OrderExpr("j.jurisdiction_id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return j, nil
}

// FindOffice looks an office up by name within a jurisdiction.
func (s *Store) FindOffice(ctx context.Context, jurisdictionID int, name string) (*models.Office, error) {
	o := new(models.Office)
	err := s.idb.NewSelect().
		Model(o).
		Where("o.jurisdiction_id = ?", jurisdictionID).
		Where("LOWER(TRIM(o.office_name)) = ?", refdata.NameKey(name)).
		OrderExpr("o.office_id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

// ReferenceNames returns every jurisdiction name and every distinct office
// name, for title classification.
func (s *Store) ReferenceNames(ctx context.Context) (jurisdictions, offices []string, err error) {
	err = s.idb.NewSelect().
		Model((*models.Jurisdiction)(nil)).
		Column("jurisdiction_name").
		OrderExpr("jurisdiction_name ASC").
		Scan(ctx, &jurisdictions)
	if err != nil {
		return nil, nil, fmt.Errorf("jurisdiction names: %w", err)
	}
	err = s.idb.NewSelect().
		Model((*models.Office)(nil)).
		ColumnExpr("DISTINCT office_name").
		OrderExpr("office_name ASC").
		Scan(ctx, &offices)
	if err != nil {
		return nil, nil, fmt.Errorf("office names: %w", err)
	}
	return jurisdictions, offices, nil
}

// TermYears returns the term length of an office. An exact jurisdiction and
// office match wins; otherwise the longest term recorded for that office
// name anywhere is used.
func (s *Store) TermYears(ctx context.Context, jurisdiction, office string) (int, bool, error) {
	var years []int
	err := s.idb.NewSelect().
		Model((*models.Office)(nil)).
		Column("term_years").
		Where("LOWER(TRIM(office_name)) = ?", refdata.NameKey(office)).
		Where("LOWER(TRIM(jurisdiction)) = ?", refdata.NameKey(jurisdiction)).
		Where("term_years > 0").
		OrderExpr("term_years DESC").
		Limit(1).
		Scan(ctx, &years)
	if err != nil {
		return 0, false, err
	}
	if len(years) > 0 {
		return years[0], true, nil
	}

	err = s.idb.NewSelect().
		Model((*models.Office)(nil)).
		Column("term_years").
		Where("LOWER(TRIM(office_name)) = ?", refdata.NameKey(office)).
		Where("term_years > 0").
		OrderExpr("term_years DESC").
		Limit(1).
		Scan(ctx, &years)
	if err != nil {
		return 0, false, err
	}
	if len(years) > 0 {
		return years[0], true, nil
	}
	return 0, false, nil
}
