package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cocodems/elections/models"
	"github.com/cocodems/elections/names"
)

type individualData struct {
	models.Individual
	Campaigns []campaignData `json:"campaigns"`
}

type updateIndividualRequest struct {
	FirstName           string `json:"firstName"`
	MiddleName          string `json:"middleName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	City                string `json:"city"`
	Zip                 string `json:"zip"`
	State               string `json:"state"`
	CandidateStatus     string `json:"candidateStatus"`
	PartyAffiliation    string `json:"partyAffiliation"`
	DemocraticAlignment string `json:"democraticAlignment"`
	Area                string `json:"area"`
	Notes               string `json:"notes"`
}

var individualColumns = []string{
	"first_name", "middle_name", "last_name", "full_name",
	"email", "phone", "address", "city", "zip", "state",
	"candidate_status", "party_affiliation", "democratic_alignment", "area", "notes",
}

type personData struct {
	ContactID           int64   `json:"contactID"`
	FullName            string  `json:"fullName"`
	PartyAffiliation    *string `json:"partyAffiliation,omitempty"`
	CandidateStatus     *string `json:"candidateStatus,omitempty"`
	CurrentJurisdiction string  `json:"currentJurisdiction"`
	CurrentOffice       string  `json:"currentOffice"`
}

// Individual returns a person with every campaign they ran, oldest first.
func (h *Handler) Individual(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	ind, err := h.store.FindIndividual(ctx, id)
	if err != nil {
		return lookupError(err, "individual")
	}

	var campaigns []models.Campaign
	err = h.db.NewSelect().
		Model(&campaigns).
		Where("cp.contact_id = ?", id).
		OrderExpr("cp.election_date ASC, cp.race_id ASC").
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, individualData{Individual: *ind, Campaigns: toCampaignData(campaigns)})
}

// UpdateIndividual replaces a person's editable fields. Blank optional
// fields are cleared.
func (h *Handler) UpdateIndividual(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req updateIndividualRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" || req.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "firstName and lastName are required")
	}

	ind := &models.Individual{
		ContactID:           id,
		FirstName:           req.FirstName,
		MiddleName:          optional(req.MiddleName),
		LastName:            req.LastName,
		Email:               optional(req.Email),
		Phone:               optional(req.Phone),
		Address:             optional(req.Address),
		City:                optional(req.City),
		Zip:                 optional(req.Zip),
		State:               optional(req.State),
		CandidateStatus:     optional(req.CandidateStatus),
		PartyAffiliation:    optional(req.PartyAffiliation),
		DemocraticAlignment: optional(req.DemocraticAlignment),
		Area:                optional(req.Area),
		Notes:               optional(req.Notes),
	}
	ind.FullName = names.Full(names.Parts{First: ind.FirstName, Middle: req.MiddleName, Last: ind.LastName})

	if err := h.store.UpdateIndividual(c.Request().Context(), ind, individualColumns...); err != nil {
		return lookupError(err, "individual")
	}
	return c.JSON(http.StatusOK, ind)
}

// People lists every person with the offices they currently hold.
func (h *Handler) People(c echo.Context) error {
	ctx := c.Request().Context()

	var people []models.Individual
	if err := h.db.NewSelect().Model(&people).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var serving []models.Campaign
	err := h.db.NewSelect().
		Model(&serving).
		Column("cp.contact_id", "cp.jurisdiction", "cp.office_name").
		Where("cp.elected = 1").
		Where("cp.contact_id IS NOT NULL").
		Where("cp.term_start_date <= ?", today).
		Where("cp.term_end_date >= ?", today).
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	jurisdictions := map[int64]map[string]bool{}
	offices := map[int64]map[string]bool{}
	for _, cp := range serving {
		id := *cp.ContactID
		if jurisdictions[id] == nil {
			jurisdictions[id], offices[id] = map[string]bool{}, map[string]bool{}
		}
		jurisdictions[id][cp.Jurisdiction] = true
		offices[id][cp.OfficeName] = true
	}

	result := make([]personData, len(people))
	for i, p := range people {
		result[i] = personData{
			ContactID:           p.ContactID,
			FullName:            p.FullName,
			PartyAffiliation:    p.PartyAffiliation,
			CandidateStatus:     p.CandidateStatus,
			CurrentJurisdiction: joinSorted(jurisdictions[p.ContactID]),
			CurrentOffice:       joinSorted(offices[p.ContactID]),
		}
	}

	key := map[string]func(personData) string{
		"full_name":            func(p personData) string { return p.FullName },
		"current_jurisdiction": func(p personData) string { return p.CurrentJurisdiction },
		"current_office":       func(p personData) string { return p.CurrentOffice },
		"party_affiliation":    func(p personData) string { return deref(p.PartyAffiliation) },
		"candidate_status":     func(p personData) string { return deref(p.CandidateStatus) },
	}
	by, ok := key[c.QueryParam("sort")]
	if !ok {
		by = key["full_name"]
	}
	desc := strings.EqualFold(c.QueryParam("order"), "desc")
	sort.SliceStable(result, func(i, j int) bool {
		a, b := strings.ToLower(by(result[i])), strings.ToLower(by(result[j]))
		if desc {
			return a > b
		}
		return a < b
	})

	return c.JSON(http.StatusOK, result)
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinSorted(set map[string]bool) string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
