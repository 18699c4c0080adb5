package driven

import (
	"context"

	"github.com/reel-labs/reelsearch/internal/core/domain"
)

// QueryOptions configures a similarity query against the index.
type QueryOptions struct {
	// Limit is the number of nearest points to return.
	Limit int

	// ScoreThreshold excludes hits scoring below it.
	ScoreThreshold float64

	// TypeFilter, when non-empty, restricts hits to points whose
	// payload "type" field equals it exactly.
	TypeFilter string
}

// QueryHit is a raw similarity result from the index.
type QueryHit struct {
	// ID is the point id.
	ID string

	// Score is the similarity score under the collection's metric.
	Score float64

	// Payload is the stored metadata mapping.
	Payload map[string]any
}

// MediaIndex persists vectors with payloads and answers similarity
// queries. Backed by a Qdrant collection in production and an in-memory
// index in tests.
type MediaIndex interface {
	// GetCollection returns the schema of an existing collection, or
	// domain.ErrNotFound if it does not exist.
	GetCollection(ctx context.Context, name string) (*domain.CollectionSchema, error)

	// CreateCollection creates a collection with the given schema.
	CreateCollection(ctx context.Context, schema domain.CollectionSchema) error

	// Upsert writes points into the collection and blocks until the
	// index acknowledges durability of the whole batch.
	Upsert(ctx context.Context, collection string, points []domain.IndexPoint) error

	// Query returns the nearest points to the vector, ordered by
	// descending score as the index returns them.
	Query(ctx context.Context, collection string, vector []float32, opts QueryOptions) ([]QueryHit, error)

	// Close releases resources.
	Close() error
}
