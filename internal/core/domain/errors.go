package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchemaMismatch indicates an existing collection's vector
	// dimension disagrees with the dimension of freshly produced
	// embeddings. Fatal: upserting would corrupt the collection's
	// nearest-neighbour geometry.
	ErrSchemaMismatch = errors.New("collection dimension mismatch")

	// ErrEmbeddingShape indicates the embedding gateway returned a
	// batch whose row count or vector length disagrees with the
	// expected (rows, dim) shape. Fatal, no retry.
	ErrEmbeddingShape = errors.New("bad embedding shape")

	// ErrEmptyEmbedding indicates the gateway returned nothing for a
	// search query. Surfaced as a rejected request, never as a silent
	// empty result.
	ErrEmptyEmbedding = errors.New("empty embedding")

	// ErrLengthMismatch indicates record and embedding counts disagree
	// when encoding points. Unreachable given the pipeline's own
	// invariants; kept as a guard.
	ErrLengthMismatch = errors.New("record and embedding counts differ")
)
