package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cocodems/elections/models"
)

type officeholderData struct {
	CandidateName string `json:"candidateName"`
	ContactID     *int64 `json:"contactID,omitempty"`
	ElectionDate  string `json:"electionDate"`
}

type officeSummary struct {
	OfficeID      int                `json:"officeID"`
	OfficeName    string             `json:"officeName"`
	Seats         int                `json:"seats"`
	Officeholders []officeholderData `json:"currentOfficeholders"`
}

type jurisdictionData struct {
	models.Jurisdiction
	Offices []officeSummary `json:"offices"`
}

// Jurisdictions returns all jurisdictions, sorted by name or type.
func (h *Handler) Jurisdictions(c echo.Context) error {
	var jurisdictions []models.Jurisdiction
	err := h.db.NewSelect().
		Model(&jurisdictions).
		OrderExpr(orderBy(c, map[string]string{
			"jurisdiction_name": "j.jurisdiction_name",
			"jurisdiction_type": "j.jurisdiction_type",
		}, "jurisdiction_name")).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, jurisdictions)
}

// JurisdictionDetails returns a jurisdiction, its offices, and the most
// recently elected holders of each office.
func (h *Handler) JurisdictionDetails(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	j := new(models.Jurisdiction)
	if err := h.db.NewSelect().Model(j).Where("j.jurisdiction_id = ?", id).Scan(ctx); err != nil {
		return lookupError(err, "jurisdiction")
	}

	var offices []models.Office
	err = h.db.NewSelect().
		Model(&offices).
		Where("o.jurisdiction_id = ?", id).
		OrderExpr("o.office_name ASC").
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result := jurisdictionData{Jurisdiction: *j, Offices: make([]officeSummary, len(offices))}
	for i, o := range offices {
		var holders []models.Campaign
		err := h.db.NewSelect().
			Model(&holders).
			Column("cp.candidate_name", "cp.contact_id", "cp.election_date").
			Where("cp.office_id = ?", o.OfficeID).
			Where("cp.elected = 1").
			OrderExpr("cp.election_date DESC, cp.votes_received DESC").
			Limit(max(o.Seats, 1)).
			Scan(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		summary := officeSummary{
			OfficeID:      o.OfficeID,
			OfficeName:    o.OfficeName,
			Seats:         o.Seats,
			Officeholders: make([]officeholderData, len(holders)),
		}
		for k, hd := range holders {
			summary.Officeholders[k] = officeholderData{
				CandidateName: hd.CandidateName,
				ContactID:     hd.ContactID,
				ElectionDate:  fmtDate(&hd.ElectionDate),
			}
		}
		result.Offices[i] = summary
	}

	return c.JSON(http.StatusOK, result)
}

// Offices returns every office ordered by jurisdiction and name.
func (h *Handler) Offices(c echo.Context) error {
	var offices []models.Office
	err := h.db.NewSelect().
		Model(&offices).
		OrderExpr("o.jurisdiction ASC, o.office_name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, offices)
}

// OfficeDetails returns one office.
func (h *Handler) OfficeDetails(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	o := new(models.Office)
	if err := h.db.NewSelect().Model(o).Where("o.office_id = ?", id).Scan(c.Request().Context()); err != nil {
		return lookupError(err, "office")
	}
	return c.JSON(http.StatusOK, o)
}
