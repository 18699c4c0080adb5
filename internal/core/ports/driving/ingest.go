package driving

import (
	"context"

	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
)

// IngestService drives the ingestion pipeline end to end.
type IngestService interface {
	// Ingest loads every source, embeds and upserts all records in
	// batches, and returns the total number of records indexed. An
	// empty source set returns 0 without error.
	Ingest(ctx context.Context, sources ...driven.RecordSource) (int, error)
}
