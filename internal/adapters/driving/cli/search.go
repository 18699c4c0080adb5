package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reel-labs/reelsearch/internal/core/domain"
)

var (
	searchLimit     int
	searchType      string
	searchThreshold float64
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog by meaning",
	Long: `Embeds a natural-language query and returns the closest catalog
entries by cosine similarity. Results below the score threshold are
dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().StringVar(&searchType, "type", "", `restrict results to "Movie" or "TV Show"`)
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", domain.DefaultScoreThreshold, "minimum similarity score")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	svc, err := getSearchService()
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Limit:          searchLimit,
		TypeFilter:     searchType,
		ScoreThreshold: searchThreshold,
	}

	results, err := svc.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.MediaHit) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.MediaHit) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title, _ := results[i].Title.(string)
		if title == "" {
			title = results[i].ID
		}
		kind, _ := results[i].Type.(string)

		cmd.Printf("  [%d] %s (%.4f)\n", i+1, title, results[i].Score)
		if kind != "" {
			cmd.Printf("      Type: %s\n", kind)
		}
		if genres := formatGenres(results[i].Genres); genres != "" {
			cmd.Printf("      Genres: %s\n", genres)
		}
		cmd.Println()
	}
	return nil
}

// formatGenres renders the genre payload, which may arrive as a string
// slice or as []any after a JSON round-trip.
func formatGenres(v any) string {
	switch g := v.(type) {
	case []string:
		return strings.Join(g, ", ")
	case []any:
		parts := make([]string, 0, len(g))
		for _, item := range g {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case string:
		return g
	default:
		return ""
	}
}
