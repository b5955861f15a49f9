// Package store is the bun-backed storage used by ingestion runs and the API.
// All SQL is portable between PostgreSQL and SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/cocodems/elections/models"
	"github.com/cocodems/elections/names"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would violate a uniqueness rule.
	ErrConflict = errors.New("already exists")
)

// Tx is what one ingestion run may do to storage. Every call made through a
// Tx commits or rolls back together.
type Tx interface {
	FindElection(ctx context.Context, electionID int64) (*models.Election, error)
	CreateElection(ctx context.Context, e *models.Election) error
	FindJurisdiction(ctx context.Context, name string) (*models.Jurisdiction, error)
	FindOffice(ctx context.Context, jurisdictionID int, name string) (*models.Office, error)
	UpsertRace(ctx context.Context, r *models.Race) (created bool, err error)
	ReplaceCampaigns(ctx context.Context, raceID int64, campaigns []models.Campaign) (deleted int64, err error)
	MatchIndividual(ctx context.Context, q names.Query) (int64, bool, error)
	CreateIndividual(ctx context.Context, ind *models.Individual) error
}

// Store wraps a database handle, or a transaction inside RunInTx.
type Store struct {
	db  *bun.DB
	idb bun.IDB
}

var _ Tx = (*Store)(nil)

// New returns a Store on db.
func New(db *bun.DB) *Store {
	return &Store{db: db, idb: db}
}

// DB returns the underlying handle.
func (s *Store) DB() *bun.DB { return s.db }

// RunInTx runs fn in one transaction. An error from fn rolls back everything
// fn did.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &Store{db: s.db, idb: &tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation recognizes unique-constraint errors from pgdriver and
// modernc sqlite by message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint")
}
