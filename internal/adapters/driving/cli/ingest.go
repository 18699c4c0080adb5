package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reel-labs/reelsearch/internal/adapters/driven/datasets/kaggle"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
	"github.com/reel-labs/reelsearch/internal/core/services"
	"github.com/reel-labs/reelsearch/internal/normalisers/imdb"
	"github.com/reel-labs/reelsearch/internal/normalisers/netflix"
)

var (
	ingestMovies string
	ingestMixed  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest catalog CSVs into the vector index",
	Long: `Reads movie and TV show catalogs, embeds each entry, and upserts the
results into the vector index. Re-running is safe: entries are
content-addressed, so unchanged rows overwrite themselves in place.

Local paths are used only when both --movies and --mixed are given;
otherwise the default public datasets are downloaded and ingested.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestMovies, "movies", "m", "", "path to a movies catalog CSV file or directory")
	ingestCmd.Flags().StringVarP(&ingestMixed, "mixed", "x", "", "path to a mixed movie/TV catalog CSV file or directory")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ix, err := getIndex()
	if err != nil {
		return err
	}
	emb, err := getEmbedder()
	if err != nil {
		return err
	}
	// Fail before any download or load if the model isn't reachable.
	if err := emb.Ping(ctx); err != nil {
		return fmt.Errorf("embedding service unreachable: %w", err)
	}

	// Paths travel as a pair: unless both are given, both default
	// datasets are fetched.
	moviesPath, mixedPath := ingestMovies, ingestMixed
	if moviesPath == "" || mixedPath == "" {
		moviesPath, mixedPath, err = downloadDefaults(ctx, cmd)
		if err != nil {
			return err
		}
	}

	sources := []driven.RecordSource{
		imdb.New(moviesPath),
		netflix.New(mixedPath),
	}

	svc := services.NewIngestService(ix, emb, cfg.Qdrant.Collection)
	svc.SetProgress(&printProgress{out: cmd.OutOrStdout()})

	total, err := svc.Ingest(ctx, sources...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Indexed %d records into %q\n", total, cfg.Qdrant.Collection)
	return nil
}

// downloadDefaults fetches the default public datasets and returns
// their extracted directories.
func downloadDefaults(ctx context.Context, cmd *cobra.Command) (movies, mixed string, err error) {
	client, err := kaggle.NewClient(kaggle.Config{
		Username: cfg.Kaggle.Username,
		Key:      cfg.Kaggle.Key,
	})
	if err != nil {
		return "", "", err
	}

	cmd.Printf("Downloading %s...\n", kaggle.MoviesDataset)
	movies, err = client.Download(ctx, kaggle.MoviesDataset)
	if err != nil {
		return "", "", fmt.Errorf("downloading movies dataset: %w", err)
	}

	cmd.Printf("Downloading %s...\n", kaggle.MixedDataset)
	mixed, err = client.Download(ctx, kaggle.MixedDataset)
	if err != nil {
		return "", "", fmt.Errorf("downloading mixed dataset: %w", err)
	}
	return movies, mixed, nil
}

// printProgress reports batch progress as plain lines. Each advance is
// one completed embed+upsert batch, so the output stays short even for
// large catalogs.
type printProgress struct {
	out   io.Writer
	total int
	done  int
}

func (p *printProgress) Start(total int) {
	p.total = total
	p.done = 0
	fmt.Fprintf(p.out, "Indexing %d records...\n", total)
}

func (p *printProgress) Advance(n int) {
	p.done += n
	fmt.Fprintf(p.out, "  %d/%d\n", p.done, p.total)
}

func (p *printProgress) Done() {}
