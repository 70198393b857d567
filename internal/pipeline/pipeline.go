// Package pipeline orchestrates document ingestion: ledger gate, text
// extraction, LLM structuring, profile merge, ledger record. Each file moves
// through the stages independently; the profile store and ledger serialize
// the shared state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/chays/careerscan/internal/config"
	"github.com/chays/careerscan/internal/extract"
	"github.com/chays/careerscan/internal/ledger"
	"github.com/chays/careerscan/internal/llm"
	"github.com/chays/careerscan/internal/parsing"
	"github.com/chays/careerscan/internal/profile"
	"github.com/chays/careerscan/internal/scanner"
)

// Outcome is the terminal state of one document's trip through the pipeline.
type Outcome string

const (
	OutcomeMerged  Outcome = "merged"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
	// OutcomeUnchanged means the ledger already has this path+hash as a
	// success, so no work was done and no ledger entry was written.
	OutcomeUnchanged Outcome = "unchanged"
)

// Pipeline wires the ingestion stages together and bounds concurrency.
type Pipeline struct {
	cfg       *config.Config
	extractor *extract.Extractor
	client    llm.Client
	store     *profile.Store
	ledger    *ledger.Ledger

	workers chan struct{}
	runs    sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]bool
	queued   map[string]bool
}

// New assembles a pipeline from its collaborators.
func New(cfg *config.Config, client llm.Client, store *profile.Store, ldg *ledger.Ledger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		extractor: extract.New(cfg.MaxFileSizeBytes()),
		client:    client,
		store:     store,
		ledger:    ldg,
		workers:   make(chan struct{}, cfg.ScanWorkers),
		inflight:  make(map[string]bool),
		queued:    make(map[string]bool),
	}
}

// ProcessBacklog scans the documents directory and processes every
// discovered file with bounded parallelism. Per-file failures are recorded
// in the ledger and do not abort the run; the returned error covers only
// persistence-level breakage.
func (p *Pipeline) ProcessBacklog(ctx context.Context) error {
	docs := scanner.Scan(p.cfg.DocumentsPath)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.ScanWorkers)
	for _, doc := range docs {
		g.Go(func() error {
			_, err := p.ProcessFile(ctx, doc.FilePath)
			return err
		})
	}
	return g.Wait()
}

// Submit queues a single file, typically from a watcher event. If the file
// is already being processed the request is coalesced: one rerun happens
// after the in-flight pass finishes, so a write that lands mid-processing is
// not lost and bursts do not pile up.
func (p *Pipeline) Submit(ctx context.Context, path string) {
	p.mu.Lock()
	if p.inflight[path] {
		p.queued[path] = true
		p.mu.Unlock()
		logrus.WithField("file_path", path).Debug("already in flight, queued rerun")
		return
	}
	p.inflight[path] = true
	p.mu.Unlock()

	p.runs.Add(1)
	go p.runSubmitted(ctx, path)
}

// Wait blocks until every submitted run, including coalesced reruns, has
// finished. Called on shutdown so watcher-triggered work is not abandoned
// mid-flight.
func (p *Pipeline) Wait() {
	p.runs.Wait()
}

func (p *Pipeline) runSubmitted(ctx context.Context, path string) {
	defer p.runs.Done()

	select {
	case p.workers <- struct{}{}:
	case <-ctx.Done():
		p.clearInflight(path)
		return
	}
	_, err := p.ProcessFile(ctx, path)
	<-p.workers
	if err != nil {
		logrus.WithError(err).WithField("file_path", path).Error("pipeline persistence failure")
	}

	p.mu.Lock()
	rerun := p.queued[path]
	delete(p.queued, path)
	delete(p.inflight, path)
	p.mu.Unlock()

	if rerun && ctx.Err() == nil {
		p.Submit(ctx, path)
	}
}

func (p *Pipeline) clearInflight(path string) {
	p.mu.Lock()
	delete(p.inflight, path)
	delete(p.queued, path)
	p.mu.Unlock()
}

// ProcessFile runs one document through the full pipeline. The returned
// error is non-nil only for persistence failures (profile or ledger write);
// extraction and model failures are recorded in the ledger and reported via
// the outcome.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (Outcome, error) {
	log := logrus.WithField("file_path", path)

	hash, err := scanner.HashFile(path)
	if err != nil {
		// File vanished or unreadable between discovery and processing.
		log.WithError(err).Warn("cannot hash document, skipping")
		return OutcomeSkipped, nil
	}

	done, err := p.ledger.IsProcessed(path, hash)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("ledger check failed: %w", err)
	}
	if done {
		log.Debug("document already processed, skipping")
		return OutcomeUnchanged, nil
	}

	category := scanner.Classify(filepath.Base(path))
	entry := ledger.Entry{
		FilePath:         path,
		ContentHash:      hash,
		DocumentCategory: category,
	}

	if err := scanner.ValidateFile(path, p.cfg.MaxFileSizeBytes()); err != nil {
		return p.recordTerminal(entry, classifyExtractError(err), err, log)
	}

	result, err := p.extractor.Extract(path)
	if err != nil {
		return p.recordTerminal(entry, classifyExtractError(err), err, log)
	}
	if result.Text == "" {
		return p.recordTerminal(entry, ledger.StatusSkipped, errors.New("document contains no extractable text"), log)
	}
	log.WithField("chars", result.CharCount).Debug("text extracted")

	ext, err := parsing.ExtractCareerInfo(ctx, p.client, result.Text, category)
	if err != nil {
		return p.recordTerminal(entry, ledger.StatusFailed, err, log)
	}

	mergeRes, err := p.store.Merge(ext)
	if err != nil {
		// The profile on disk is still the pre-merge version. Do not record
		// success or failure; the document must be retried.
		return OutcomeFailed, fmt.Errorf("profile merge failed: %w", err)
	}

	entry.Status = ledger.StatusSuccess
	entry.ItemsExtracted = ext.ItemCounts()
	if err := p.ledger.Record(entry); err != nil {
		return OutcomeFailed, fmt.Errorf("ledger record failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"category": category,
		"added":    mergeRes.Added,
		"merged":   mergeRes.Merged,
	}).Info("document ingested")
	return OutcomeMerged, nil
}

// recordTerminal writes a failed or skipped ledger entry for a document
// that cannot proceed. Ledger write failure is the only error propagated.
func (p *Pipeline) recordTerminal(entry ledger.Entry, status string, cause error, log *logrus.Entry) (Outcome, error) {
	entry.Status = status
	entry.ErrorDetail = cause.Error()
	if err := p.ledger.Record(entry); err != nil {
		return OutcomeFailed, fmt.Errorf("ledger record failed: %w", err)
	}

	if status == ledger.StatusSkipped {
		log.WithField("reason", cause.Error()).Info("document skipped")
		return OutcomeSkipped, nil
	}
	log.WithError(cause).Warn("document processing failed")
	return OutcomeFailed, nil
}

// classifyExtractError maps extraction errors to ledger statuses. Documents
// the pipeline deliberately will not ingest (wrong format, over the size
// ceiling) are skips; unreadable content is a failure.
func classifyExtractError(err error) string {
	var unsupported *extract.UnsupportedFormatError
	var tooLarge *extract.FileTooLargeError
	if errors.As(err, &unsupported) || errors.As(err, &tooLarge) {
		return ledger.StatusSkipped
	}
	return ledger.StatusFailed
}
