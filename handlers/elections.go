package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cocodems/elections/ingest"
	"github.com/cocodems/elections/models"
	"github.com/cocodems/elections/store"
)

type electionData struct {
	ElectionID   int64  `json:"electionID"`
	ElectionName string `json:"electionName"`
	ElectionDate string `json:"electionDate"`
}

type createElectionRequest struct {
	ElectionName string `json:"electionName"`
	ElectionDate string `json:"electionDate"`
}

type winnerData struct {
	CandidateName string `json:"candidateName"`
	ContactID     *int64 `json:"contactID,omitempty"`
}

type raceSummary struct {
	RaceID     int64        `json:"raceID"`
	RaceName   string       `json:"raceName"`
	Seats      int          `json:"seats"`
	TotalVotes int          `json:"totalVotes"`
	TermYears  int          `json:"termYears"`
	Winners    []winnerData `json:"winners"`
}

type electionRacesData struct {
	Election electionData  `json:"election"`
	Races    []raceSummary `json:"races"`
}

func toElectionData(e models.Election) electionData {
	return electionData{
		ElectionID:   e.ElectionID,
		ElectionName: e.ElectionName,
		ElectionDate: fmtDate(&e.ElectionDate),
	}
}

// Elections returns all elections, sorted by name or date.
func (h *Handler) Elections(c echo.Context) error {
	var elections []models.Election
	err := h.db.NewSelect().
		Model(&elections).
		OrderExpr(orderBy(c, map[string]string{
			"election_name": "e.election_name",
			"election_date": "e.election_date",
		}, "election_name")).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result := make([]electionData, len(elections))
	for i, e := range elections {
		result[i] = toElectionData(e)
	}
	return c.JSON(http.StatusOK, result)
}

// CreateElection inserts a new election. Its ID is derived from the date.
func (h *Handler) CreateElection(c echo.Context) error {
	var req createElectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.ElectionName = strings.TrimSpace(req.ElectionName)
	if req.ElectionName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "electionName is required")
	}
	date, err := ingest.ParseDate(req.ElectionDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "electionDate must be YYYY-MM-DD")
	}

	e := &models.Election{ElectionName: req.ElectionName, ElectionDate: date}
	if err := h.store.CreateElection(c.Request().Context(), e); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "election already exists for that date")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, toElectionData(*e))
}

// ElectionRaces returns an election with its races and their winners.
func (h *Handler) ElectionRaces(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	election, err := h.store.FindElection(ctx, id)
	if err != nil {
		return lookupError(err, "election")
	}

	var races []models.Race
	err = h.db.NewSelect().
		Model(&races).
		Where("rc.election_id = ?", id).
		OrderExpr(orderBy(c, map[string]string{
			"race_name":   "rc.race_name",
			"seats":       "rc.seats",
			"total_votes": "rc.total_votes",
			"term_years":  "rc.term_years",
		}, "race_name")).
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var winners []models.Campaign
	err = h.db.NewSelect().
		Model(&winners).
		Column("cp.race_id", "cp.candidate_name", "cp.contact_id").
		Where("cp.election_id = ?", id).
		Where("cp.elected = 1").
		OrderExpr("cp.votes_received DESC").
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	byRace := map[int64][]winnerData{}
	for _, w := range winners {
		byRace[w.RaceID] = append(byRace[w.RaceID], winnerData{CandidateName: w.CandidateName, ContactID: w.ContactID})
	}

	result := electionRacesData{Election: toElectionData(*election), Races: make([]raceSummary, len(races))}
	for i, r := range races {
		ws := byRace[r.RaceID]
		if ws == nil {
			ws = []winnerData{}
		}
		result.Races[i] = raceSummary{
			RaceID:     r.RaceID,
			RaceName:   r.RaceName,
			Seats:      r.Seats,
			TotalVotes: r.TotalVotes,
			TermYears:  r.TermYears,
			Winners:    ws,
		}
	}
	return c.JSON(http.StatusOK, result)
}
