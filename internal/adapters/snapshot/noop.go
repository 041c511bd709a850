package snapshot

import "context"

// NoopSink discards snapshots. Default when no snapshot backend is
// configured.
type NoopSink struct{}

func (NoopSink) Capture(ctx context.Context, requestID, stage string, payload any) error {
	return nil
}
