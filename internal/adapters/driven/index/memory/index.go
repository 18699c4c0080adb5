// Package memory provides an in-memory MediaIndex. Used by tests and
// by offline runs that don't have a Qdrant instance at hand; contents
// vanish with the process.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/reel-labs/reelsearch/internal/core/domain"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.MediaIndex = (*Index)(nil)

type collection struct {
	schema domain.CollectionSchema
	points map[string]domain.IndexPoint
}

// Index keeps collections in process memory and answers similarity
// queries by exact cosine scan.
type Index struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{collections: make(map[string]*collection)}
}

// GetCollection returns the schema of an existing collection, or
// domain.ErrNotFound.
func (ix *Index) GetCollection(_ context.Context, name string) (*domain.CollectionSchema, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	c, ok := ix.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
	}
	schema := c.schema
	return &schema, nil
}

// CreateCollection creates a collection with the given schema.
func (ix *Index) CreateCollection(_ context.Context, schema domain.CollectionSchema) error {
	if schema.Dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive", domain.ErrInvalidInput)
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.collections[schema.Name] = &collection{
		schema: schema,
		points: make(map[string]domain.IndexPoint),
	}
	return nil
}

// Upsert writes points; existing ids are overwritten.
func (ix *Index) Upsert(_ context.Context, name string, points []domain.IndexPoint) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	c, ok := ix.collections[name]
	if !ok {
		return fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
	}
	for _, p := range points {
		if len(p.Vector) != c.schema.Dimension {
			return fmt.Errorf("%w: point %s has dimension %d, collection has %d",
				domain.ErrInvalidInput, p.ID, len(p.Vector), c.schema.Dimension)
		}
		c.points[p.ID] = p
	}
	return nil
}

// Query scans the collection for the nearest points by cosine
// similarity.
func (ix *Index) Query(_ context.Context, name string, vector []float32, opts driven.QueryOptions) ([]driven.QueryHit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	c, ok := ix.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
	}

	hits := make([]driven.QueryHit, 0, len(c.points))
	for _, p := range c.points {
		if opts.TypeFilter != "" {
			kind, _ := p.Payload["type"].(string)
			if kind != opts.TypeFilter {
				continue
			}
		}
		score := cosine(vector, p.Vector)
		if score < opts.ScoreThreshold {
			continue
		}
		hits = append(hits, driven.QueryHit{ID: p.ID, Score: score, Payload: p.Payload})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}
	return hits, nil
}

// Count returns the number of points stored in a collection. Test
// helper; not part of the MediaIndex port.
func (ix *Index) Count(name string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	c, ok := ix.collections[name]
	if !ok {
		return 0
	}
	return len(c.points)
}

// Point returns a stored point by id. Test helper.
func (ix *Index) Point(name, id string) (domain.IndexPoint, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	c, ok := ix.collections[name]
	if !ok {
		return domain.IndexPoint{}, false
	}
	p, ok := c.points[id]
	return p, ok
}

// Close releases resources.
func (ix *Index) Close() error { return nil }

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
