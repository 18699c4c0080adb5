// Package netflix normalises the mixed movies/TV catalog schema
// (title, director, cast, listed_in, description, duration, type).
package netflix

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

// Source reads the mixed movies/TV CSV schema from a file or directory.
type Source struct {
	path string
}

// New creates a mixed-schema record source for the given path.
func New(path string) *Source {
	return &Source{path: path}
}

// Name identifies the source in logs.
func (s *Source) Name() string { return "netflix" }

// Load reads every row and normalises it to a MediaRecord. Rows
// without a title or with an unrecognised type are skipped: accepted
// records always carry both.
func (s *Source) Load(_ context.Context) ([]domain.MediaRecord, error) {
	rows, err := normalisers.ReadRows(s.path)
	if err != nil {
		return nil, err
	}

	records := make([]domain.MediaRecord, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		title := strings.TrimSpace(r["title"])
		kind := domain.MediaKind(strings.TrimSpace(r["type"]))
		if title == "" || !kind.IsValid() {
			skipped++
			continue
		}
		records = append(records, domain.MediaRecord{
			Title:       title,
			Director:    normalisers.Optional(r["director"]),
			Cast:        normalisers.ParseListish(r["cast"]),
			Genre:       normalisers.SplitList(r["listed_in"]),
			Description: normalisers.Optional(r["description"]),
			DurationMin: normalisers.ParseDurationMinutes(r["duration"]),
			Kind:        kind,
		})
	}
	if skipped > 0 {
		l := logger.L()
		l.Debug().Str("source", s.Name()).Int("skipped", skipped).Msg("rows without title or valid type skipped")
	}
	return records, nil
}
