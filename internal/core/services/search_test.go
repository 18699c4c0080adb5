package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reel-labs/reelsearch/internal/core/domain"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
)

// emptyEmbedder simulates a gateway returning nothing for a query.
type emptyEmbedder struct{}

func (emptyEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return [][]float32{}, nil
}
func (emptyEmbedder) ModelName() string          { return "empty" }
func (emptyEmbedder) Ping(context.Context) error { return nil }
func (emptyEmbedder) Close() error               { return nil }

func TestSearchService_Search(t *testing.T) {
	t.Run("maps hits to media results", func(t *testing.T) {
		ix := &stubIndex{hits: []driven.QueryHit{
			{
				ID:    "point-1",
				Score: 0.91239,
				Payload: map[string]any{
					"title": "Heat",
					"type":  "Movie",
					"genre": []any{"Crime", "Thriller"},
				},
			},
		}}
		svc := NewSearchService(ix, &fakeEmbedder{dim: 4}, testCollection)

		hits, err := svc.Search(context.Background(), "bank heist movie", domain.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, hits, 1)

		hit := hits[0]
		assert.Equal(t, "point-1", hit.ID)
		assert.InDelta(t, 0.9124, hit.Score, 1e-9, "scores round to 4 decimal places")
		assert.Equal(t, "Heat", hit.Title)
		assert.Equal(t, "Movie", hit.Type)
		assert.Equal(t, []any{"Crime", "Thriller"}, hit.Genres)
		assert.Nil(t, hit.Year)
		assert.Nil(t, hit.RatingNum)
		assert.Nil(t, hit.ContentRating)
	})

	t.Run("passes options through to the index", func(t *testing.T) {
		ix := &stubIndex{}
		svc := NewSearchService(ix, &fakeEmbedder{dim: 4}, testCollection)

		_, err := svc.Search(context.Background(), "korean drama", domain.SearchOptions{
			Limit:          3,
			TypeFilter:     "TV Show",
			ScoreThreshold: 0.75,
		})
		require.NoError(t, err)

		assert.Equal(t, testCollection, ix.gotName)
		assert.Len(t, ix.gotVector, 4)
		assert.Equal(t, 3, ix.gotOptions.Limit)
		assert.Equal(t, "TV Show", ix.gotOptions.TypeFilter)
		assert.InDelta(t, 0.75, ix.gotOptions.ScoreThreshold, 1e-9)
	})

	t.Run("defaults the limit", func(t *testing.T) {
		ix := &stubIndex{}
		svc := NewSearchService(ix, &fakeEmbedder{dim: 4}, testCollection)

		_, err := svc.Search(context.Background(), "anything", domain.SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSearchLimit, ix.gotOptions.Limit)
	})

	t.Run("rejects empty and whitespace queries", func(t *testing.T) {
		svc := NewSearchService(&stubIndex{}, &fakeEmbedder{dim: 4}, testCollection)

		_, err := svc.Search(context.Background(), "", domain.SearchOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Search(context.Background(), "   ", domain.SearchOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty embedding is rejected not silently empty", func(t *testing.T) {
		svc := NewSearchService(&stubIndex{}, emptyEmbedder{}, testCollection)

		_, err := svc.Search(context.Background(), "real query", domain.SearchOptions{})
		assert.ErrorIs(t, err, domain.ErrEmptyEmbedding)
	})

	t.Run("propagates embedder errors", func(t *testing.T) {
		embErr := errors.New("gateway down")
		svc := NewSearchService(&stubIndex{}, &fakeEmbedder{err: embErr}, testCollection)

		_, err := svc.Search(context.Background(), "query", domain.SearchOptions{})
		assert.ErrorIs(t, err, embErr)
	})

	t.Run("propagates index errors", func(t *testing.T) {
		ixErr := errors.New("connection refused")
		svc := NewSearchService(&stubIndex{queryErr: ixErr}, &fakeEmbedder{dim: 4}, testCollection)

		_, err := svc.Search(context.Background(), "query", domain.SearchOptions{})
		assert.ErrorIs(t, err, ixErr)
	})

	t.Run("no hits yields an empty slice", func(t *testing.T) {
		svc := NewSearchService(&stubIndex{}, &fakeEmbedder{dim: 4}, testCollection)

		hits, err := svc.Search(context.Background(), "nothing matches", domain.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}
