package driven

import (
	"context"

	"github.com/reel-labs/reelsearch/internal/core/domain"
)

// RecordSource loads raw catalog rows and normalises them into
// MediaRecords. A Load failure is recoverable at the pipeline level:
// the orchestrator logs it and proceeds with zero rows from that
// source.
type RecordSource interface {
	// Name identifies the source in logs.
	Name() string

	// Load reads and normalises every row the source can produce.
	Load(ctx context.Context) ([]domain.MediaRecord, error)
}
