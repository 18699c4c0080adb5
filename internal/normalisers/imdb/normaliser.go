// Package imdb normalises the movies-only catalog schema
// (title, stars, genre, description, duration). Every row is a Movie
// and the schema carries no director column.
package imdb

import (
	"context"
	"strings"

	"github.com/reel-labs/reelsearch/internal/core/domain"
	"github.com/reel-labs/reelsearch/internal/core/ports/driven"
	"github.com/reel-labs/reelsearch/internal/logger"
	"github.com/reel-labs/reelsearch/internal/normalisers"
)

// Ensure Source implements the interface.
var _ driven.RecordSource = (*Source)(nil)

// Source reads the movies-only CSV schema from a file or directory.
type Source struct {
	path string
}

// New creates a movies-only record source for the given path.
func New(path string) *Source {
	return &Source{path: path}
}

// Name identifies the source in logs.
func (s *Source) Name() string { return "imdb" }

// Load reads every row and normalises it to a MediaRecord. Rows
// without a title are skipped: accepted records always carry a title.
func (s *Source) Load(_ context.Context) ([]domain.MediaRecord, error) {
	rows, err := normalisers.ReadRows(s.path)
	if err != nil {
		return nil, err
	}

	records := make([]domain.MediaRecord, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		title := strings.TrimSpace(r["title"])
		if title == "" {
			skipped++
			continue
		}
		records = append(records, domain.MediaRecord{
			Title:       title,
			Director:    nil, // not available in this schema
			Cast:        normalisers.ParseListish(r["stars"]),
			Genre:       normalisers.SplitList(r["genre"]),
			Description: normalisers.Optional(r["description"]),
			DurationMin: normalisers.ParseDurationMinutes(r["duration"]),
			Kind:        domain.KindMovie,
		})
	}
	if skipped > 0 {
		l := logger.L()
		l.Debug().Str("source", s.Name()).Int("skipped", skipped).Msg("rows without title skipped")
	}
	return records, nil
}
