package domain

// Default search parameters, matching the semantic_search tool contract.
const (
	DefaultSearchLimit    = 5
	DefaultScoreThreshold = 0.8
)

// SearchOptions configures a semantic search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// TypeFilter restricts results to points whose payload type equals
	// this value exactly ("Movie" or "TV Show"). Empty means no filter.
	TypeFilter string

	// ScoreThreshold excludes results below this similarity score.
	ScoreThreshold float64
}

// MediaHit is a single search result surfaced to callers. Payload
// fields pass through as stored; absent fields marshal as null rather
// than being omitted.
type MediaHit struct {
	ID            string  `json:"id"`
	Score         float64 `json:"score"`
	Title         any     `json:"title"`
	Type          any     `json:"type"`
	Year          any     `json:"year"`
	Genres        any     `json:"genres"`
	RatingNum     any     `json:"rating_num"`
	ContentRating any     `json:"content_rating"`
}
