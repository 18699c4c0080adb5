package domain

import "github.com/google/uuid"

// Distance metrics supported by the index.
const (
	DistanceCosine = "Cosine"
)

// CollectionSchema describes an index collection. Dimension is immutable
// once the collection exists.
type CollectionSchema struct {
	Name      string
	Dimension int
	Distance  string
}

// IndexPoint is a MediaRecord encoded for storage: a content-addressed
// id, the embedding vector, and a compacted metadata payload. Points are
// transient in-process values; they only persist as index entries.
type IndexPoint struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// pointNamespace is the fixed UUID namespace for content-addressed point
// ids. Changing it orphans every previously written point.
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// PointID derives a deterministic point id from a corpus string. The id
// is an MD5-based UUID, so identical corpora always map to the same
// point and re-ingestion overwrites in place. The index engine only
// accepts UUIDs or unsigned integers as point ids, hence the UUID
// rendering of the hash.
func PointID(corpus string) string {
	return uuid.NewMD5(pointNamespace, []byte(corpus)).String()
}

// EncodePoint converts a record and its embedding into an IndexPoint.
// Nil and empty payload entries are stripped so stored payloads stay
// compact. Pure function: byte-identical input yields byte-identical
// output across runs.
func EncodePoint(rec MediaRecord, vector []float32) IndexPoint {
	payload := map[string]any{
		"title": rec.Title,
		"type":  rec.Kind.String(),
	}
	if rec.Director != nil && *rec.Director != "" {
		payload["director"] = *rec.Director
	}
	if len(rec.Cast) > 0 {
		payload["cast"] = rec.Cast
	}
	if len(rec.Genre) > 0 {
		payload["genre"] = rec.Genre
	}
	if rec.Description != nil && *rec.Description != "" {
		payload["description"] = *rec.Description
	}
	if rec.DurationMin != nil {
		payload["duration_min"] = *rec.DurationMin
	}

	return IndexPoint{
		ID:      PointID(rec.Corpus()),
		Vector:  vector,
		Payload: payload,
	}
}
