package driving

import (
	"context"

	"github.com/reel-labs/reelsearch/internal/core/domain"
)

// SearchService provides semantic search to external actors.
type SearchService interface {
	// Search embeds the query and returns the nearest catalog entries.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.MediaHit, error)
}
