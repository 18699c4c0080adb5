// Package cli implements the reelsearch command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reel-labs/reelsearch/internal/adapters/driven/embedding/ollama"
	"github.com/reel-labs/reelsearch/internal/adapters/driven/embedding/openai"
	"github.com/reel-labs/reelsearch/internal/adapters/driven/index/memory"
	"github.com/reel-labs/reelsearch/internal/adapters/driven/index/qdrant"
	"github.com/reel-labs/reelsearch/internal/config"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
	"github.com/reel-labs/reelsearch/internal/core/ports/driving"
	"github.com/reel-labs/reelsearch/internal/core/services"
	"github.com/reel-labs/reelsearch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose      bool
	indexBackend string
)

// cfg holds the effective configuration, loaded before any command runs.
var cfg config.Config

// Package-level services, built lazily so commands that don't need the
// index (version, help) never dial it. Tests inject their own.
var (
	searchService driving.SearchService
	mediaIndex    driven.MediaIndex
	embedder      driven.EmbeddingService
)

var rootCmd = &cobra.Command{
	Use:   "reelsearch",
	Short: "Semantic search over a movie and TV catalog",
	Long: `reelsearch ingests movie and TV show catalogs into a vector index
and answers natural-language queries against them, either directly or
through an MCP server for AI assistants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.Setup(verbose)

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&indexBackend, "index", "qdrant", `index backend ("qdrant" or "memory")`)
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// getEmbedder returns the configured embedding service, building it on
// first use.
func getEmbedder() (driven.EmbeddingService, error) {
	if embedder != nil {
		return embedder, nil
	}

	switch cfg.Embedding.Provider {
	case config.ProviderOpenAI:
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: cfg.Embedding.Timeout(),
		})
		if err != nil {
			return nil, err
		}
		embedder = svc
	default:
		embedder = ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: cfg.Embedding.Timeout(),
		})
	}
	return embedder, nil
}

// getIndex returns the vector index client, building it on first use.
// The memory backend only makes sense for single-process runs (its
// contents vanish on exit); qdrant is the default.
func getIndex() (driven.MediaIndex, error) {
	if mediaIndex != nil {
		return mediaIndex, nil
	}

	switch indexBackend {
	case "memory":
		mediaIndex = memory.New()
	case "qdrant", "":
		mediaIndex = qdrant.New(qdrant.Config{
			Host:   cfg.Qdrant.Host,
			Port:   cfg.Qdrant.Port,
			APIKey: cfg.Qdrant.APIKey,
		})
	default:
		return nil, fmt.Errorf("unknown index backend %q", indexBackend)
	}
	return mediaIndex, nil
}

// getSearchService returns the search service, building it on first use.
func getSearchService() (driving.SearchService, error) {
	if searchService != nil {
		return searchService, nil
	}

	ix, err := getIndex()
	if err != nil {
		return nil, err
	}
	emb, err := getEmbedder()
	if err != nil {
		return nil, err
	}

	searchService = services.NewSearchService(ix, emb, cfg.Qdrant.Collection)
	return searchService, nil
}

func closeServices() {
	if embedder != nil {
		embedder.Close() //nolint:errcheck
	}
	if mediaIndex != nil {
		mediaIndex.Close() //nolint:errcheck
	}
}
