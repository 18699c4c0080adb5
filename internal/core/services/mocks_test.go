package services

import (
	"context"
	"hash/fnv"

	"github.com/reel-labs/reelsearch/internal/core/domain"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
)

// fakeEmbedder produces deterministic vectors derived from the input
// text, so identical corpora embed identically across calls.
type fakeEmbedder struct {
	dim      int
	err      error
	dropLast bool // return one row fewer than requested
	calls    int
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vecs[i] = vecFor(text, f.dim)
	}
	if f.dropLast && len(vecs) > 0 {
		vecs = vecs[:len(vecs)-1]
	}
	return vecs, nil
}

func (f *fakeEmbedder) ModelName() string         { return "fake" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

func vecFor(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text)) //nolint:errcheck
	seed := h.Sum32()

	vec := make([]float32, dim)
	for i := range vec {
		seed = seed*1664525 + 1013904223
		vec[i] = float32(seed%1000)/1000 + 0.001
	}
	return vec
}

// staticSource serves a fixed record slice, or a fixed error.
type staticSource struct {
	name    string
	records []domain.MediaRecord
	err     error
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Load(context.Context) ([]domain.MediaRecord, error) {
	return s.records, s.err
}

// stubIndex records the query it receives and returns canned hits.
type stubIndex struct {
	hits       []driven.QueryHit
	queryErr   error
	gotName    string
	gotVector  []float32
	gotOptions driven.QueryOptions
}

func (s *stubIndex) GetCollection(context.Context, string) (*domain.CollectionSchema, error) {
	return nil, domain.ErrNotFound
}

func (s *stubIndex) CreateCollection(context.Context, domain.CollectionSchema) error {
	return nil
}

func (s *stubIndex) Upsert(context.Context, string, []domain.IndexPoint) error {
	return nil
}

func (s *stubIndex) Query(_ context.Context, name string, vector []float32, opts driven.QueryOptions) ([]driven.QueryHit, error) {
	s.gotName = name
	s.gotVector = vector
	s.gotOptions = opts
	return s.hits, s.queryErr
}

func (s *stubIndex) Close() error { return nil }
