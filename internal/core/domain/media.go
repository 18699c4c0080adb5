package domain

import (
	"fmt"
	"strings"
)

// MediaKind distinguishes the two catalog entry types.
type MediaKind string

// Supported media kinds.
const (
	KindMovie  MediaKind = "Movie"
	KindTVShow MediaKind = "TV Show"
)

// IsValid returns true if the kind is recognised.
func (k MediaKind) IsValid() bool {
	switch k {
	case KindMovie, KindTVShow:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k MediaKind) String() string {
	return string(k)
}

// MediaRecord is the unified catalog entity produced by the normalisers.
// Title and Kind are always set for accepted records; every other field
// models absence explicitly (nil pointer, empty slice) so that payload
// compaction can drop it.
type MediaRecord struct {
	// Title is the work's title. Never empty.
	Title string

	// Director is the principal director, when the source knows it.
	Director *string

	// Cast is the ordered list of actors. May be empty, never nil tokens.
	Cast []string

	// Genre is the ordered list of genres. May be empty.
	Genre []string

	// Description is a short synopsis.
	Description *string

	// DurationMin is the runtime in minutes. Absent for season-based
	// durations.
	DurationMin *int

	// Kind is Movie or TV Show. Always valid.
	Kind MediaKind
}

// corpusSeparator joins the corpus parts. Changing it changes every
// point id, so it is fixed for the life of a collection.
const corpusSeparator = " | "

// Corpus composes the canonical text for a record. The result is both
// the text sent for embedding and the input to point id hashing, so the
// part order and separator are deterministic.
func (r MediaRecord) Corpus() string {
	duration := ""
	if r.DurationMin != nil && *r.DurationMin > 0 {
		duration = fmt.Sprintf("%d min", *r.DurationMin)
	}

	parts := []string{
		r.Title,
		deref(r.Director),
		strings.Join(r.Cast, ", "),
		strings.Join(r.Genre, ", "),
		deref(r.Description),
		string(r.Kind),
		duration,
	}

	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, corpusSeparator)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
