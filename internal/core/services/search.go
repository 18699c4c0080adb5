package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reel-labs/reelsearch/internal/core/domain"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
	"github.com/reel-labs/reelsearch/internal/core/ports/driving"
	"github.com/reel-labs/reelsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService is the stateless read path: embed the query, run a
// similarity query with an optional type filter, map the hits. Safe
// under concurrent callers - the embedder and index are the only shared
// state and both are read-only here.
type SearchService struct {
	index      driven.MediaIndex
	embedder   driven.EmbeddingService
	collection string
	log        zerolog.Logger
}

// NewSearchService creates a search service reading from the named
// collection.
func NewSearchService(index driven.MediaIndex, embedder driven.EmbeddingService, collection string) *SearchService {
	return &SearchService{
		index:      index,
		embedder:   embedder,
		collection: collection,
		log:        logger.L().With().Str("component", "search").Logger(),
	}
}

// Search embeds the query and returns the nearest catalog entries,
// ordered by descending score as the index returns them.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.MediaHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	vecs, err := s.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, fmt.Errorf("%w: gateway returned nothing for query", domain.ErrEmptyEmbedding)
	}

	s.log.Debug().
		Str("query", query).
		Int("limit", limit).
		Str("type_filter", opts.TypeFilter).
		Float64("score_threshold", opts.ScoreThreshold).
		Msg("running similarity query")

	hits, err := s.index.Query(ctx, s.collection, vecs[0], driven.QueryOptions{
		Limit:          limit,
		ScoreThreshold: opts.ScoreThreshold,
		TypeFilter:     opts.TypeFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("querying collection %q: %w", s.collection, err)
	}

	results := make([]domain.MediaHit, len(hits))
	for i, h := range hits {
		results[i] = domain.MediaHit{
			ID:            h.ID,
			Score:         roundScore(h.Score),
			Title:         h.Payload["title"],
			Type:          h.Payload["type"],
			Year:          h.Payload["year"],
			Genres:        h.Payload["genre"],
			RatingNum:     h.Payload["rating_num"],
			ContentRating: h.Payload["content_rating"],
		}
	}
	s.log.Debug().Int("results", len(results)).Msg("query complete")
	return results, nil
}

// roundScore rounds to 4 decimal places for stable presentation.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}
