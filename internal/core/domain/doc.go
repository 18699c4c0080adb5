// Package domain defines the core entities for reelsearch.
//
// This package is the innermost layer of the hexagon. It defines the
// fundamental types:
//
//   - MediaRecord: A unified catalog entry (movie or TV show)
//   - IndexPoint: A MediaRecord encoded for the vector index
//   - CollectionSchema: The shape of an index collection
//
// All other packages depend on domain, never the reverse.
package domain
