package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLSnapshotStore persists pipeline stage snapshots to postgres. One row
// per (request, stage); payloads are stored as JSONB for ad-hoc inspection.
type SQLSnapshotStore struct {
	DB *sql.DB
}

func NewSQLSnapshotStore(db *sql.DB) *SQLSnapshotStore {
	return &SQLSnapshotStore{DB: db}
}

func (s *SQLSnapshotStore) Capture(ctx context.Context, requestID, stage string, payload any) error {
	if s.DB == nil {
		return errors.New("snapshot store: db is nil")
	}
	if stage == "" {
		return errors.New("capture snapshot: stage must not be empty")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("capture snapshot: marshal payload: %w", err)
	}

	q := `
	INSERT INTO pipeline_snapshots (request_id, stage, payload)
	VALUES ($1, $2, $3);
	`

	if _, err := s.DB.ExecContext(ctx, q, requestID, stage, body); err != nil {
		return fmt.Errorf("capture snapshot: insert pipeline_snapshots row: %w", err)
	}

	return nil
}

// Initialize the snapshot schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createSnapshotsQuery := `
	CREATE TABLE IF NOT EXISTS pipeline_snapshots (
		id BIGSERIAL PRIMARY KEY,
		request_id TEXT NOT NULL,
		stage TEXT NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pipeline_snapshots_request_stage
	ON pipeline_snapshots(request_id, stage);
	`

	for i, stmt := range []string{createSnapshotsQuery, createIndexQuery} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}
