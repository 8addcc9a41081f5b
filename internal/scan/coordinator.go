// Package scan runs a concurrent statistics pass over a vault.
//
// One task is scheduled per enumerated document. Tasks read and extract in
// parallel, bounded by Options.Workers. Their results go to a single consumer
// goroutine that owns the VaultTotals and performs every merge, so the
// accumulator is never written concurrently. A failing document or an
// unreadable subtree is recorded as a Failure and never aborts the scan.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"vaultstats/internal/application"
	"vaultstats/internal/domain"
	"vaultstats/internal/ports"
)

// Extractor computes the statistics of one document
type Extractor interface {
	Extract(content string) domain.NoteStats
}

// FailureKind classifies a recovered per-item failure
type FailureKind string

const (
	// FailureEnumeration is an entry or subtree that could not be listed
	FailureEnumeration FailureKind = "enumeration"
	// FailureRead is a document that could not be read; it contributes zero
	FailureRead FailureKind = "read"
)

// Failure records one document or subtree excluded from the totals
type Failure struct {
	Path   string      `json:"path" yaml:"path"`
	Kind   FailureKind `json:"kind" yaml:"kind"`
	Reason string      `json:"error" yaml:"error"`
	Err    error       `json:"-" yaml:"-"`
}

func newFailure(path string, kind FailureKind, err error) *Failure {
	return &Failure{Path: path, Kind: kind, Reason: err.Error(), Err: err}
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s failure at %s: %v", f.Kind, f.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of one completed scan
type Report struct {
	Root      string             `json:"root" yaml:"root"`
	Totals    domain.VaultTotals `json:"totals" yaml:"totals"`
	Documents int                `json:"documents" yaml:"documents"`
	Failures  []Failure          `json:"failures" yaml:"failures"`
}

// Skipped returns the number of documents that could not be read
func (r *Report) Skipped() int {
	return r.count(FailureRead)
}

// Unreadable returns the number of entries that could not be enumerated
func (r *Report) Unreadable() int {
	return r.count(FailureEnumeration)
}

func (r *Report) count(kind FailureKind) int {
	n := 0
	for _, f := range r.Failures {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Options configures a Coordinator
type Options struct {
	// Workers bounds the number of documents read concurrently.
	// Zero means DefaultWorkers(); negative means one goroutine per document.
	Workers int

	// Logger receives per-item failures. Nil discards them.
	Logger *slog.Logger
}

// DefaultWorkers returns the default in-flight read bound
func DefaultWorkers() int {
	return 4 * runtime.NumCPU()
}

// Coordinator fans out document extraction and aggregates the results
type Coordinator struct {
	source    ports.DocumentSource
	reader    ports.DocumentReader
	extractor Extractor
	workers   int
	logger    *slog.Logger
}

// New creates a Coordinator
func New(source ports.DocumentSource, reader ports.DocumentReader, extractor Extractor, opts Options) *Coordinator {
	workers := opts.Workers
	if workers == 0 {
		workers = DefaultWorkers()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Coordinator{
		source:    source,
		reader:    reader,
		extractor: extractor,
		workers:   workers,
		logger:    logger,
	}
}

// outcome is what a task hands to the aggregating consumer
type outcome struct {
	stats   domain.NoteStats
	failure *Failure
}

// Run scans root and returns the aggregated report once every scheduled
// task has finished. An invalid root fails before any work is scheduled.
// If ctx is cancelled the outstanding tasks are abandoned and ctx.Err() is
// returned without a report.
func (c *Coordinator) Run(ctx context.Context, root string) (*Report, error) {
	walkRoot, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Root:     root,
		Totals:   domain.NewVaultTotals(),
		Failures: []Failure{},
	}

	results := make(chan outcome, max(c.workers, 1)*2)
	merged := make(chan struct{})

	go func() {
		defer close(merged)
		for o := range results {
			if o.failure != nil {
				report.Failures = append(report.Failures, *o.failure)
				continue
			}
			report.Totals.Merge(o.stats)
			report.Documents++
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	if c.workers > 0 {
		g.SetLimit(c.workers)
	}

	for path, err := range c.source.Documents(gctx, walkRoot) {
		if err != nil {
			c.logger.Warn("skipping unreadable entry",
				slog.String("path", path),
				slog.String("error", err.Error()))
			results <- outcome{failure: newFailure(path, FailureEnumeration, err)}
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results <- c.process(path)
			return nil
		})
	}

	waitErr := g.Wait()
	close(results)
	<-merged

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if waitErr != nil {
		return nil, waitErr
	}

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Path < report.Failures[j].Path
	})

	c.logger.Debug("scan complete",
		slog.String("root", root),
		slog.Int("documents", report.Documents),
		slog.Int("skipped", report.Skipped()),
		slog.Int("unreadable", report.Unreadable()))

	return report, nil
}

// process reads and extracts one document; read errors become a Failure
func (c *Coordinator) process(path string) outcome {
	content, err := c.reader.ReadDocument(path)
	if err != nil {
		c.logger.Warn("skipping unreadable document",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return outcome{failure: newFailure(path, FailureRead, err)}
	}
	return outcome{stats: c.extractor.Extract(content)}
}

// checkRoot rejects a root that is missing, not a directory or not
// listable, and returns it with symlinks resolved
func checkRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("%w: empty path", application.ErrInvalidRoot)
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s does not exist", application.ErrInvalidRoot, root)
		}
		return "", fmt.Errorf("%w: %v", application.ErrInvalidRoot, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", application.ErrInvalidRoot, root)
	}

	dir, err := os.Open(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrInvalidRoot, err)
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %s is not readable: %v", application.ErrInvalidRoot, root, err)
	}
	return resolved, nil
}
