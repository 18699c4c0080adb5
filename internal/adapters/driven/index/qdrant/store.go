// Package qdrant provides a MediaIndex adapter backed by a Qdrant
// instance over its REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reel-labs/reelsearch/internal/core/domain"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MediaIndex = (*Store)(nil)

// Default configuration values.
const (
	DefaultHost    = "localhost"
	DefaultPort    = 6333
	DefaultTimeout = 30 * time.Second
)

// memmapThreshold tells Qdrant to switch a segment to memory-mapped
// storage once it exceeds this many points. A tuning hint, not a
// correctness requirement.
const memmapThreshold = 20000

const maxErrorBodyBytes = 1024

// Config holds connection details for a Qdrant instance.
type Config struct {
	// Host is the Qdrant host (default: localhost).
	Host string

	// Port is the REST port (default: 6333). Ignored when APIKey is
	// set: managed instances are addressed as https://<host>.
	Port int

	// APIKey authenticates against a managed instance. Optional.
	APIKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a MediaIndex over the Qdrant REST API.
type Store struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// envelope is Qdrant's standard response wrapper.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Status json.RawMessage `json:"status"`
	Time   float64         `json:"time"`
}

// statusError carries a non-2xx HTTP response.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant http status=%d body=%q", e.Code, e.Body)
}

// New creates a Qdrant-backed store. When an API key is configured the
// instance is addressed over HTTPS by host alone, mirroring managed
// deployments; otherwise plain host:port.
func New(cfg Config) *Store {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	baseURL := fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	if cfg.APIKey != "" {
		baseURL = "https://" + cfg.Host
	}

	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// GetCollection reads an existing collection's schema, or
// domain.ErrNotFound if it does not exist.
func (s *Store) GetCollection(ctx context.Context, name string) (*domain.CollectionSchema, error) {
	var result struct {
		Config struct {
			Params struct {
				Vectors struct {
					Size     int    `json:"size"`
					Distance string `json:"distance"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	}
	err := s.doJSON(ctx, http.MethodGet, "/collections/"+name, nil, &result)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("collection %q: %w", name, domain.ErrNotFound)
		}
		return nil, err
	}

	return &domain.CollectionSchema{
		Name:      name,
		Dimension: result.Config.Params.Vectors.Size,
		Distance:  result.Config.Params.Vectors.Distance,
	}, nil
}

// CreateCollection creates a collection with the given schema, cosine
// by default, and the memmap storage hint for large segments.
func (s *Store) CreateCollection(ctx context.Context, schema domain.CollectionSchema) error {
	distance := schema.Distance
	if distance == "" {
		distance = domain.DistanceCosine
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     schema.Dimension,
			"distance": distance,
		},
		"optimizers_config": map[string]any{
			"memmap_threshold": memmapThreshold,
		},
	}
	if err := s.doJSON(ctx, http.MethodPut, "/collections/"+schema.Name, body, nil); err != nil {
		return fmt.Errorf("creating collection %q: %w", schema.Name, err)
	}
	return nil
}

// Upsert writes points and waits for the write to be durable.
func (s *Store) Upsert(ctx context.Context, collection string, points []domain.IndexPoint) error {
	if len(points) == 0 {
		return nil
	}
	body := map[string]any{"points": points}
	path := "/collections/" + collection + "/points?wait=true"
	if err := s.doJSON(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("upserting %d points: %w", len(points), err)
	}
	return nil
}

// Query runs a similarity search with an optional exact-match filter on
// the payload type field.
func (s *Store) Query(ctx context.Context, collection string, vector []float32, opts driven.QueryOptions) ([]driven.QueryHit, error) {
	req := map[string]any{
		"vector":       vector,
		"limit":        opts.Limit,
		"with_payload": true,
	}
	if opts.ScoreThreshold > 0 {
		req["score_threshold"] = opts.ScoreThreshold
	}
	if opts.TypeFilter != "" {
		req["filter"] = map[string]any{
			"must": []any{
				map[string]any{
					"key":   "type",
					"match": map[string]any{"value": opts.TypeFilter},
				},
			},
		}
	}

	var raw []struct {
		ID      json.RawMessage `json:"id"`
		Score   float64         `json:"score"`
		Payload map[string]any  `json:"payload"`
	}
	path := "/collections/" + collection + "/points/search"
	if err := s.doJSON(ctx, http.MethodPost, path, req, &raw); err != nil {
		return nil, fmt.Errorf("searching collection %q: %w", collection, err)
	}

	hits := make([]driven.QueryHit, 0, len(raw))
	for _, item := range raw {
		hits = append(hits, driven.QueryHit{
			ID:      decodePointID(item.ID),
			Score:   item.Score,
			Payload: item.Payload,
		})
	}
	return hits, nil
}

// Close releases resources.
func (s *Store) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// doJSON sends a request and decodes the Qdrant envelope into out.
func (s *Store) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Only error bodies are bounded; success bodies can be
		// arbitrarily large search results.
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes+1))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		return &statusError{Code: resp.StatusCode, Body: truncateBody(raw)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode qdrant envelope: %w", err)
	}
	if msg := envelopeStatusError(env.Status); msg != "" {
		return fmt.Errorf("qdrant: %s", msg)
	}

	if out == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode qdrant result: %w", err)
	}
	return nil
}

// envelopeStatusError returns a message when the envelope status is not
// ok. Qdrant reports status either as the string "ok" or as an object
// with an error field.
func envelopeStatusError(raw json.RawMessage) string {
	status := strings.TrimSpace(string(raw))
	if status == "" || status == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.EqualFold(s, "ok") {
			return ""
		}
		return fmt.Sprintf("status=%q", s)
	}

	var obj struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && strings.TrimSpace(obj.Error) != "" {
		return strings.TrimSpace(obj.Error)
	}
	return "status=" + status
}

// decodePointID normalises the id field, which Qdrant may return as a
// string or an unsigned integer.
func decodePointID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return fmt.Sprintf("%d", n)
	}
	return strings.TrimSpace(string(raw))
}

func truncateBody(raw []byte) string {
	if len(raw) <= maxErrorBodyBytes {
		return string(raw)
	}
	return string(raw[:maxErrorBodyBytes]) + "..."
}
