package driven

// ProgressReporter observes ingestion progress. It is purely
// informational: implementations must not affect pipeline correctness,
// and the default is a no-op.
type ProgressReporter interface {
	// Start announces the total number of records about to be indexed.
	Start(total int)

	// Advance reports that n more records were durably upserted.
	Advance(n int)

	// Done announces the end of the run.
	Done()
}

// NopProgress is the default, do-nothing ProgressReporter.
type NopProgress struct{}

func (NopProgress) Start(int)   {}
func (NopProgress) Advance(int) {}
func (NopProgress) Done()       {}
