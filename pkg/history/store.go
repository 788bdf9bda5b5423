// Package history keeps a local record of submitted claims and the scores
// they received. Only inputs and raw results are stored; reports are always
// derived again when shown.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/helmcode/claimsafe/pkg/model"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("history: record not found")

// Record is one stored assessment.
type Record struct {
	ID        string                     `json:"id" yaml:"id"`
	PolicyID  string                     `json:"policy_id" yaml:"policy_id"`
	Claim     model.ClaimInput           `json:"claim" yaml:"claim"`
	Result    model.RiskAssessmentResult `json:"result" yaml:"result"`
	CreatedAt time.Time                  `json:"created_at" yaml:"created_at"`
}

// Store persists assessments in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "history: create dir %s", dir)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "history: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "history: exec %s", pragma)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	policy_id  TEXT NOT NULL,
	claim      TEXT NOT NULL,
	result     TEXT NOT NULL,
	risk_score INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "history: migrate")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores an assessment and returns the new record.
func (s *Store) Save(ctx context.Context, policyID string, in model.ClaimInput, result model.RiskAssessmentResult) (*Record, error) {
	claimJSON, err := json.Marshal(in)
	if err != nil {
		return nil, eris.Wrap(err, "history: marshal claim")
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, eris.Wrap(err, "history: marshal result")
	}

	rec := &Record{
		ID:        uuid.New().String(),
		PolicyID:  policyID,
		Claim:     in,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, policy_id, claim, result, risk_score, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PolicyID, string(claimJSON), string(resultJSON), result.RiskScore, rec.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "history: insert assessment")
	}
	return rec, nil
}

// Get loads one record by id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, policy_id, claim, result, created_at FROM assessments WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "history: get %s", id)
	}
	return rec, nil
}

// List returns the most recent records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, policy_id, claim, result, created_at FROM assessments ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "history: list")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, eris.Wrap(err, "history: scan")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "history: iterate")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec        Record
		claimJSON  string
		resultJSON string
	)
	if err := sc.Scan(&rec.ID, &rec.PolicyID, &claimJSON, &resultJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(claimJSON), &rec.Claim); err != nil {
		return nil, eris.Wrap(err, "unmarshal claim")
	}
	if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
		return nil, eris.Wrap(err, "unmarshal result")
	}
	return &rec, nil
}
