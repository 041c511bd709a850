package ports

import "context"

// Port: a boundary for persisting per-stage pipeline snapshots.
//
// Snapshots are debug artifacts keyed by request id and stage name. The
// pipeline treats capture failures as non-fatal: a broken sink must never
// fail a recommendation.
type SnapshotSink interface {
	Capture(ctx context.Context, requestID string, stage string, payload any) error
}
