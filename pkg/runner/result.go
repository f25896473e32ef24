package runner

// FileOutcome records what happened to a single file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Changed reports whether formatting differs from the input.
	Changed bool

	// Written reports whether the file was rewritten on disk.
	Written bool

	// Original is the input text, kept for diff rendering.
	Original []byte

	// Formatted is the formatter output. Empty when Error is set.
	Formatted string

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully formatted.
	FilesProcessed int

	// FilesChanged is the number of files whose formatting differs from
	// the input.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any file's formatting differs from its input.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
