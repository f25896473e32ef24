package runner

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/solfmt/internal/logging"
	"github.com/yaklabco/solfmt/pkg/config"
	"github.com/yaklabco/solfmt/pkg/format"
	"github.com/yaklabco/solfmt/pkg/fsutil"
)

// Runner orchestrates formatting across many files with a worker pool.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and formats them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Formats files concurrently using a worker pool
//   - Writes changed files in place when the mode asks for it
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	logging.FromContext(ctx).Debug("formatting files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; rebuild the discovery order afterwards.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// worker formats files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := ProcessFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile formats one file and, in write mode, rewrites it in place.
func ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, snap, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Original = content

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	formatted, err := format.Source(path, content, cfg)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Formatted = formatted
	outcome.Changed = !bytes.Equal(content, []byte(formatted))

	if !outcome.Changed || opts.Mode != ModeWrite {
		return outcome
	}

	// Refuse to clobber a file edited while formatting was in flight.
	if modified, err := snap.Modified(ctx); err != nil {
		outcome.Error = fmt.Errorf("check %s: %w", path, err)
		return outcome
	} else if modified {
		outcome.Error = fmt.Errorf("%w: %s", fsutil.ErrModified, path)
		return outcome
	}

	if opts.Backups {
		if _, err := fsutil.CreateBackup(ctx, path); err != nil {
			outcome.Error = fmt.Errorf("backup %s: %w", path, err)
			return outcome
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(formatted), 0)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
		return outcome
	}
	outcome.Written = written
	if written {
		logging.FromContext(ctx).Debug("rewrote file", logging.FieldPath, path)
	}
	return outcome
}
