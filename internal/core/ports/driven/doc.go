// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them:
//
//   - EmbeddingService: Maps text batches to fixed-length vectors
//   - MediaIndex: Stores points and answers similarity queries
//   - RecordSource: Loads raw catalog rows into MediaRecords
//   - ProgressReporter: Optional ingestion progress observer
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
