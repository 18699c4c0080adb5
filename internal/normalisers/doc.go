// Package normalisers turns raw tabular catalog rows into MediaRecords.
// Each source schema has its own subpackage implementing the
// RecordSource port; this package holds the field parsing shared
// between them (list-ish columns, durations, CSV discovery).
package normalisers
