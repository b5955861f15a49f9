package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/cocodems/elections/store"
)

const dateLayout = "2006-01-02"

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	store  *store.Store
	JWTKey []byte
}

// New creates a Handler with the given database connection and JWT signing key.
func New(db *bun.DB, jwtKey []byte) *Handler {
	return &Handler{db: db, store: store.New(db), JWTKey: jwtKey}
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// lookupError maps a missing row to 404 and anything else to 500.
func lookupError(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, what+" not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// orderBy builds an ORDER BY expression from the sort and order query
// parameters. Only whitelisted columns are accepted.
func orderBy(c echo.Context, columns map[string]string, def string) string {
	col, ok := columns[c.QueryParam("sort")]
	if !ok {
		col = columns[def]
	}
	if strings.EqualFold(c.QueryParam("order"), "desc") {
		return col + " DESC"
	}
	return col + " ASC"
}

func fmtDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
