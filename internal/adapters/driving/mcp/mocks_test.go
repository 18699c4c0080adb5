package mcp

import (
	"context"

	"github.com/reel-labs/reelsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	hits     []domain.MediaHit
	err      error
	gotQuery string
	gotOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.MediaHit, error) {
	m.gotQuery = query
	m.gotOpts = opts
	return m.hits, m.err
}
