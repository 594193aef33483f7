// Package history keeps an opt-in local journal of past run submissions.
package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/basedlol/ty/internal/invoke"
)

// Record is one journaled run.
type Record struct {
	ID         string    `json:"id"`
	CodeDigest string    `json:"code_digest"`
	Code       string    `json:"code"`
	Input      string    `json:"input,omitempty"`
	Output     string    `json:"output"`
	CreatedAt  time.Time `json:"created_at"`
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Digest returns the hex BLAKE3 digest of a code payload.
func Digest(code string) string {
	sum := blake3.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Append journals one completed run and returns its id.
func (s *Store) Append(ctx context.Context, req invoke.Request, output string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx, `
INSERT INTO run_log(id, code_digest, code, input, output, created_at)
VALUES(?, ?, ?, ?, ?, ?);
`, id, Digest(req.Code), req.Code, req.Input, output, now)
	if err != nil {
		return "", fmt.Errorf("append run: %w", err)
	}
	return id, nil
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		n = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, code_digest, code, input, output, created_at
FROM run_log
ORDER BY created_at DESC, id DESC
LIMIT ?;
`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.CodeDigest, &rec.Code, &rec.Input, &rec.Output, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		rec.CreatedAt = t
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// Prune deletes everything but the newest keep runs.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return fmt.Errorf("keep must be positive, got %d", keep)
	}

	_, err := s.db.ExecContext(ctx, `
DELETE FROM run_log
WHERE id NOT IN (
  SELECT id FROM run_log ORDER BY created_at DESC, id DESC LIMIT ?
);
`, keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}
