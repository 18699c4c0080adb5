package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reel-labs/reelsearch/internal/core/domain"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
	"github.com/reel-labs/reelsearch/internal/core/ports/driving"
	"github.com/reel-labs/reelsearch/internal/logger"
)

// BatchSize is the fixed number of records embedded and upserted per
// batch. It bounds peak memory and lets large catalogs stream through a
// fixed working set.
const BatchSize = 512

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService drives the batched ingestion pipeline:
// load -> corpus -> embed -> validate schema -> encode -> upsert.
//
// The embedding dimension is unknown until the model actually runs, so
// the first batch doubles as a bootstrap: its dimension is used to
// create or validate the collection before anything is written.
//
// Records with identical corpora collapse to a single point (same
// content-addressed id, last write wins). That is what makes re-runs
// idempotent, and it also means two catalog rows that are textually
// identical are stored once - a product decision carried over from the
// deterministic-id design.
type IngestService struct {
	index      driven.MediaIndex
	embedder   driven.EmbeddingService
	collection string
	progress   driven.ProgressReporter
	log        zerolog.Logger
}

// NewIngestService creates an ingest service writing to the named
// collection.
func NewIngestService(index driven.MediaIndex, embedder driven.EmbeddingService, collection string) *IngestService {
	return &IngestService{
		index:      index,
		embedder:   embedder,
		collection: collection,
		progress:   driven.NopProgress{},
		log:        logger.L().With().Str("component", "ingest").Logger(),
	}
}

// SetProgress installs an optional progress observer. Nil is ignored;
// the default is a no-op.
func (s *IngestService) SetProgress(p driven.ProgressReporter) {
	if p != nil {
		s.progress = p
	}
}

// Ingest runs the pipeline over all sources and returns the total
// number of records indexed.
//
// Source read failures degrade gracefully: the failing source
// contributes zero records and the run continues, down to an empty
// input (which returns 0, not an error). Every other failure - bad
// embedding shape, schema mismatch, upsert error - aborts the run;
// deterministic ids make a restart from scratch safe and cheap.
func (s *IngestService) Ingest(ctx context.Context, sources ...driven.RecordSource) (int, error) {
	records := s.load(ctx, sources)
	if len(records) == 0 {
		s.log.Info().Msg("no records to index")
		return 0, nil
	}

	s.progress.Start(len(records))
	defer s.progress.Done()

	// Bootstrap batch: discover the embedding dimension.
	first := records[:min(BatchSize, len(records))]
	firstVecs, err := s.embedBatch(ctx, first)
	if err != nil {
		return 0, err
	}
	dim := len(firstVecs[0])
	s.log.Debug().Int("dimension", dim).Int("batch", len(first)).Msg("bootstrap batch embedded")

	if err := s.ensureCollection(ctx, dim); err != nil {
		return 0, err
	}

	if err := s.upsert(ctx, first, firstVecs); err != nil {
		return 0, err
	}
	s.progress.Advance(len(first))

	remaining := records[len(first):]
	for start := 0; start < len(remaining); start += BatchSize {
		batch := remaining[start:min(start+BatchSize, len(remaining))]
		vecs, err := s.embedBatch(ctx, batch)
		if err != nil {
			return 0, err
		}
		if err := s.upsert(ctx, batch, vecs); err != nil {
			return 0, err
		}
		s.progress.Advance(len(batch))
	}

	s.log.Info().Str("collection", s.collection).Int("total", len(records)).Msg("ingestion complete")
	return len(records), nil
}

// load collects records from every source, swallowing per-source read
// failures.
func (s *IngestService) load(ctx context.Context, sources []driven.RecordSource) []domain.MediaRecord {
	var records []domain.MediaRecord
	for _, src := range sources {
		rows, err := src.Load(ctx)
		if err != nil {
			s.log.Warn().Str("source", src.Name()).Err(err).Msg("source unreadable, skipping")
			continue
		}
		s.log.Debug().Str("source", src.Name()).Int("records", len(rows)).Msg("source loaded")
		records = append(records, rows...)
	}
	return records
}

// embedBatch builds corpora for a batch, embeds them, and validates the
// returned shape.
func (s *IngestService) embedBatch(ctx context.Context, batch []domain.MediaRecord) ([][]float32, error) {
	corpora := make([]string, len(batch))
	for i := range batch {
		corpora[i] = batch[i].Corpus()
	}

	vecs, err := s.embedder.EmbedBatch(ctx, corpora)
	if err != nil {
		return nil, fmt.Errorf("embedding batch: %w", err)
	}
	if err := validateShape(vecs, len(batch)); err != nil {
		return nil, err
	}
	return vecs, nil
}

// validateShape checks that the gateway returned exactly (rows, dim)
// vectors with dim > 0 and every row the same length.
func validateShape(vecs [][]float32, rows int) error {
	if len(vecs) != rows {
		return fmt.Errorf("%w: got %d rows, want %d", domain.ErrEmbeddingShape, len(vecs), rows)
	}
	dim := len(vecs[0])
	if dim == 0 {
		return fmt.Errorf("%w: zero-dimension vectors", domain.ErrEmbeddingShape)
	}
	for i, v := range vecs {
		if len(v) != dim {
			return fmt.Errorf("%w: row %d has dim %d, want %d", domain.ErrEmbeddingShape, i, len(v), dim)
		}
	}
	return nil
}

// ensureCollection creates the collection with the discovered dimension
// or verifies an existing one matches. Runs once per ingestion, before
// the first write.
func (s *IngestService) ensureCollection(ctx context.Context, dim int) error {
	schema, err := s.index.GetCollection(ctx, s.collection)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.log.Info().Str("collection", s.collection).Int("dimension", dim).Msg("creating collection")
		return s.index.CreateCollection(ctx, domain.CollectionSchema{
			Name:      s.collection,
			Dimension: dim,
			Distance:  domain.DistanceCosine,
		})
	case err != nil:
		return fmt.Errorf("reading collection %q: %w", s.collection, err)
	}

	if schema.Dimension != dim {
		return fmt.Errorf("%w: collection %q has dimension %d, embeddings have %d",
			domain.ErrSchemaMismatch, s.collection, schema.Dimension, dim)
	}
	s.log.Debug().Str("collection", s.collection).Int("dimension", dim).Msg("collection validated")
	return nil
}

// upsert encodes a batch into points and writes them synchronously.
func (s *IngestService) upsert(ctx context.Context, batch []domain.MediaRecord, vecs [][]float32) error {
	points, err := encodePoints(batch, vecs)
	if err != nil {
		return err
	}
	if err := s.index.Upsert(ctx, s.collection, points); err != nil {
		return fmt.Errorf("upserting batch of %d: %w", len(points), err)
	}
	return nil
}

func encodePoints(batch []domain.MediaRecord, vecs [][]float32) ([]domain.IndexPoint, error) {
	if len(batch) != len(vecs) {
		return nil, fmt.Errorf("%w: %d records, %d embeddings", domain.ErrLengthMismatch, len(batch), len(vecs))
	}
	points := make([]domain.IndexPoint, len(batch))
	for i := range batch {
		points[i] = domain.EncodePoint(batch[i], vecs[i])
	}
	return points, nil
}
