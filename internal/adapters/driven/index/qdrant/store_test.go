package qdrant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reel-labs/reelsearch/internal/core/domain"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return New(Config{Host: u.Hostname(), Port: port})
}

func okEnvelope(result any) []byte {
	data, _ := json.Marshal(map[string]any{
		"result": result,
		"status": "ok",
		"time":   0.001,
	})
	return data
}

func TestStore_GetCollection(t *testing.T) {
	t.Run("parses an existing collection", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/collections/movie_reviews", r.URL.Path)
			w.Write(okEnvelope(map[string]any{ //nolint:errcheck
				"config": map[string]any{
					"params": map[string]any{
						"vectors": map[string]any{
							"size":     384,
							"distance": "Cosine",
						},
					},
				},
			}))
		})

		schema, err := store.GetCollection(context.Background(), "movie_reviews")
		require.NoError(t, err)
		assert.Equal(t, "movie_reviews", schema.Name)
		assert.Equal(t, 384, schema.Dimension)
		assert.Equal(t, domain.DistanceCosine, schema.Distance)
	})

	t.Run("missing collection maps to ErrNotFound", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"status":{"error":"Not found"}}`, http.StatusNotFound)
		})

		_, err := store.GetCollection(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("server errors are surfaced", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := store.GetCollection(context.Background(), "movie_reviews")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_CreateCollection(t *testing.T) {
	var got map[string]any
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/collections/movie_reviews", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write(okEnvelope(true)) //nolint:errcheck
	})

	err := store.CreateCollection(context.Background(), domain.CollectionSchema{
		Name:      "movie_reviews",
		Dimension: 384,
		Distance:  domain.DistanceCosine,
	})
	require.NoError(t, err)

	vectors, ok := got["vectors"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 384, vectors["size"])
	assert.Equal(t, "Cosine", vectors["distance"])

	optimizers, ok := got["optimizers_config"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, memmapThreshold, optimizers["memmap_threshold"])
}

func TestStore_Upsert(t *testing.T) {
	t.Run("writes points with a durable wait", func(t *testing.T) {
		var got map[string]any
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/collections/movie_reviews/points", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("wait"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write(okEnvelope(map[string]any{"status": "completed"})) //nolint:errcheck
		})

		points := []domain.IndexPoint{
			{
				ID:      "11111111-2222-3333-4444-555555555555",
				Vector:  []float32{0.1, 0.2},
				Payload: map[string]any{"title": "Heat", "type": "Movie"},
			},
		}
		require.NoError(t, store.Upsert(context.Background(), "movie_reviews", points))

		sent, ok := got["points"].([]any)
		require.True(t, ok)
		require.Len(t, sent, 1)
		point := sent[0].(map[string]any)
		assert.Equal(t, "11111111-2222-3333-4444-555555555555", point["id"])
		payload := point["payload"].(map[string]any)
		assert.Equal(t, "Heat", payload["title"])
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		store := newTestStore(t, func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("no request expected for an empty batch")
		})

		assert.NoError(t, store.Upsert(context.Background(), "movie_reviews", nil))
	})
}

func TestStore_Query(t *testing.T) {
	t.Run("builds the search request and decodes hits", func(t *testing.T) {
		var got map[string]any
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/collections/movie_reviews/points/search", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write(okEnvelope([]map[string]any{ //nolint:errcheck
				{
					"id":      "point-a",
					"score":   0.91,
					"payload": map[string]any{"title": "Heat", "type": "Movie"},
				},
				{
					"id":      42,
					"score":   0.82,
					"payload": map[string]any{"title": "Alien", "type": "Movie"},
				},
			}))
		})

		hits, err := store.Query(context.Background(), "movie_reviews", []float32{0.5, 0.5}, driven.QueryOptions{
			Limit:          5,
			ScoreThreshold: 0.8,
			TypeFilter:     "Movie",
		})
		require.NoError(t, err)

		assert.EqualValues(t, 5, got["limit"])
		assert.Equal(t, true, got["with_payload"])
		assert.InDelta(t, 0.8, got["score_threshold"].(float64), 1e-9)

		filter := got["filter"].(map[string]any)
		must := filter["must"].([]any)
		require.Len(t, must, 1)
		cond := must[0].(map[string]any)
		assert.Equal(t, "type", cond["key"])
		assert.Equal(t, map[string]any{"value": "Movie"}, cond["match"])

		require.Len(t, hits, 2)
		assert.Equal(t, "point-a", hits[0].ID)
		assert.InDelta(t, 0.91, hits[0].Score, 1e-9)
		assert.Equal(t, "Heat", hits[0].Payload["title"])
		assert.Equal(t, "42", hits[1].ID, "integer ids are normalised to strings")
	})

	t.Run("omits filter and threshold when unset", func(t *testing.T) {
		var got map[string]any
		store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write(okEnvelope([]map[string]any{})) //nolint:errcheck
		})

		_, err := store.Query(context.Background(), "movie_reviews", []float32{1}, driven.QueryOptions{Limit: 5})
		require.NoError(t, err)

		_, hasFilter := got["filter"]
		assert.False(t, hasFilter)
		_, hasThreshold := got["score_threshold"]
		assert.False(t, hasThreshold)
	})

	t.Run("decodes large responses in full", func(t *testing.T) {
		// Payloads carry full descriptions, so a handful of hits can
		// push the body well past any fixed buffer size.
		description := strings.Repeat("a long winded plot summary ", 200)
		results := make([]map[string]any, 0, 5)
		for i := 0; i < 5; i++ {
			results = append(results, map[string]any{
				"id":    fmt.Sprintf("point-%d", i),
				"score": 0.9 - float64(i)*0.01,
				"payload": map[string]any{
					"title":       fmt.Sprintf("Title %d", i),
					"description": description,
				},
			})
		}
		body := okEnvelope(results)
		require.Greater(t, len(body), 10*1024, "response must exceed the error-body cap")

		store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write(body) //nolint:errcheck
		})

		hits, err := store.Query(context.Background(), "movie_reviews", []float32{1}, driven.QueryOptions{Limit: 5})
		require.NoError(t, err)
		require.Len(t, hits, 5)
		assert.Equal(t, "point-4", hits[4].ID)
		assert.Equal(t, description, hits[4].Payload["description"])
	})

	t.Run("envelope status errors are surfaced", func(t *testing.T) {
		store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status":{"error":"wrong vector size"},"time":0.001}`)) //nolint:errcheck
		})

		_, err := store.Query(context.Background(), "movie_reviews", []float32{1}, driven.QueryOptions{Limit: 5})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wrong vector size")
	})
}
