package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cocodems/elections/models"
)

type campaignData struct {
	CampaignID      int64   `json:"campaignID"`
	RaceID          int64   `json:"raceID"`
	CandidateName   string  `json:"candidateName"`
	ContactID       *int64  `json:"contactID,omitempty"`
	VotesReceived   int     `json:"votesReceived"`
	PercentReceived float64 `json:"percentReceived"`
	TotalVotes      int     `json:"totalVotes"`
	Elected         bool    `json:"elected"`
	ElectionDate    string  `json:"electionDate"`
	TermStartDate   string  `json:"termStartDate,omitempty"`
	ReelectionDate  string  `json:"reelectionDate,omitempty"`
	TermEndDate     string  `json:"termEndDate,omitempty"`
}

type raceData struct {
	RaceID         int64          `json:"raceID"`
	ElectionID     int64          `json:"electionID"`
	RaceName       string         `json:"raceName"`
	Jurisdiction   string         `json:"jurisdiction"`
	OfficeName     string         `json:"officeName"`
	Seats          int            `json:"seats"`
	TotalVotes     int            `json:"totalVotes"`
	TermYears      int            `json:"termYears"`
	TermStartDate  string         `json:"termStartDate,omitempty"`
	ReelectionDate string         `json:"reelectionDate,omitempty"`
	TermEndDate    string         `json:"termEndDate,omitempty"`
	Campaigns      []campaignData `json:"campaigns"`
}

func toCampaignData(cs []models.Campaign) []campaignData {
	out := make([]campaignData, len(cs))
	for i, cp := range cs {
		out[i] = campaignData{
			CampaignID:      cp.CampaignID,
			RaceID:          cp.RaceID,
			CandidateName:   cp.CandidateName,
			ContactID:       cp.ContactID,
			VotesReceived:   cp.VotesReceived,
			PercentReceived: cp.PercentReceived,
			TotalVotes:      cp.TotalVotes,
			Elected:         cp.Elected == 1,
			ElectionDate:    fmtDate(&cp.ElectionDate),
			TermStartDate:   fmtDate(cp.TermStartDate),
			ReelectionDate:  fmtDate(cp.ReelectionDate),
			TermEndDate:     fmtDate(cp.TermEndDate),
		}
	}
	return out
}

// RaceDetails returns one race with every candidate's result.
func (h *Handler) RaceDetails(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	race := new(models.Race)
	if err := h.db.NewSelect().Model(race).Where("rc.race_id = ?", id).Scan(ctx); err != nil {
		return lookupError(err, "race")
	}

	campaigns, err := h.store.RaceCampaigns(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, raceData{
		RaceID:         race.RaceID,
		ElectionID:     race.ElectionID,
		RaceName:       race.RaceName,
		Jurisdiction:   race.Jurisdiction,
		OfficeName:     race.OfficeName,
		Seats:          race.Seats,
		TotalVotes:     race.TotalVotes,
		TermYears:      race.TermYears,
		TermStartDate:  fmtDate(race.TermStartDate),
		ReelectionDate: fmtDate(race.ReelectionDate),
		TermEndDate:    fmtDate(race.TermEndDate),
		Campaigns:      toCampaignData(campaigns),
	})
}
