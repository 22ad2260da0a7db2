// Package pipeline sequences the upload, detection, and reporting stages
// of a run and maps stage failures to process exit statuses.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	piperrors "github.com/visionforge/labelpipe/errors"
	"github.com/visionforge/labelpipe/internal/fsys"
	"github.com/visionforge/labelpipe/labels"
	"github.com/visionforge/labelpipe/report"
	"github.com/visionforge/labelpipe/storage"
)

// Pipeline runs the fixed provision, upload, detect, write sequence. The
// stages are strictly sequential; a fatal stage error stops the run before
// any later stage is entered.
type Pipeline struct {
	// store uploads files and provisions the bucket
	store *storage.Client

	// detector resolves labels for uploaded objects
	detector *labels.Detector

	// fs receives the report outputs
	fs fsys.Filesystem

	// logger records run progress; nil disables logging
	logger *slog.Logger
}

// New creates a Pipeline over the given storage client and detector. Both
// must be non-nil and already configured; the pipeline adds no retry or
// concurrency on top of them.
func New(store *storage.Client, detector *labels.Detector, opts ...Option) *Pipeline {
	options := defaultOptions()
	applyOptions(options, opts)

	return &Pipeline{
		store:    store,
		detector: detector,
		fs:       options.filesystem,
		logger:   options.logger,
	}
}

// Run executes one pipeline pass: ensure the bucket exists, upload the
// configured files, detect labels for every uploaded object, and write the
// requested reports. Results accumulate in upload order.
//
// Returns:
//   - error: A *StageError identifying the failed stage, or nil on success
//
// The error maps to a process exit status via ExitCode. Skipped local
// files are never fatal; a batch where nothing uploaded is.
func (p *Pipeline) Run(ctx context.Context, cfg Config) error {
	cfg = cfg.withDefaults()
	runID := uuid.NewString()

	if p.logger != nil {
		p.logger.InfoContext(ctx, "starting pipeline run",
			"run_id", runID,
			"bucket", cfg.Bucket,
			"region", cfg.Region,
			"prefix", cfg.Prefix,
			"items", len(cfg.Paths))
	}

	created, err := p.store.EnsureBucket(ctx, cfg.Bucket, cfg.Region)
	if err != nil {
		return &StageError{Stage: StageProvision, Err: err}
	}
	if p.logger != nil {
		p.logger.InfoContext(ctx, "bucket ready",
			"run_id", runID,
			"bucket", cfg.Bucket,
			"created", created)
	}

	records, err := p.store.UploadBatch(ctx, cfg.Bucket, cfg.Prefix, cfg.Paths)
	if err != nil {
		return &StageError{Stage: StageUpload, Err: err}
	}
	if len(records) == 0 {
		return &StageError{
			Stage: StageUpload,
			Err:   piperrors.NewBucketError("run", cfg.Bucket, piperrors.ErrEmptyBatch),
		}
	}
	if p.logger != nil {
		p.logger.InfoContext(ctx, "uploaded batch",
			"run_id", runID,
			"bucket", cfg.Bucket,
			"records", len(records),
			"skipped", len(cfg.Paths)-len(records))
	}

	keys := make([]string, 0, len(records))
	for _, rec := range records {
		keys = append(keys, rec.Key)
	}

	rep := report.New()
	results := p.detector.DetectAll(ctx, cfg.Bucket, keys)
	for results.Next() {
		key, ls := results.Item()
		rep.Add(key, ls)
	}
	if err := results.Err(); err != nil {
		if cfg.FlushPartial && rep.Len() > 0 {
			if p.logger != nil {
				p.logger.WarnContext(ctx, "flushing partial results before abort",
					"run_id", runID,
					"items", rep.Len())
			}
			if werr := p.writeOutputs(ctx, runID, cfg, rep); werr != nil && p.logger != nil {
				p.logger.ErrorContext(ctx, "partial flush failed",
					"run_id", runID,
					"error", werr)
			}
		}
		return &StageError{Stage: StageDetect, Err: err}
	}

	if err := p.writeOutputs(ctx, runID, cfg, rep); err != nil {
		return &StageError{Stage: StageWrite, Err: err}
	}

	if p.logger != nil {
		p.logger.InfoContext(ctx, "pipeline run complete",
			"run_id", runID,
			"items", rep.Len(),
			"rows", len(rep.Rows()))
	}

	return nil
}

// writeOutputs persists the aggregated report to every configured target.
func (p *Pipeline) writeOutputs(ctx context.Context, runID string, cfg Config, rep *report.Report) error {
	if err := rep.WriteCSV(p.fs, cfg.CSVPath); err != nil {
		return err
	}
	if p.logger != nil {
		p.logger.InfoContext(ctx, "wrote tabular report",
			"run_id", runID,
			"path", cfg.CSVPath,
			"rows", len(rep.Rows()))
	}

	if err := rep.WriteJSON(p.fs, cfg.JSONPath); err != nil {
		return err
	}
	if p.logger != nil {
		p.logger.InfoContext(ctx, "wrote combined report",
			"run_id", runID,
			"path", cfg.JSONPath,
			"items", rep.Len())
	}

	if cfg.PerItemDir != "" {
		if err := rep.WriteJSONPerKey(p.fs, cfg.PerItemDir); err != nil {
			return err
		}
		if p.logger != nil {
			p.logger.InfoContext(ctx, "wrote per-item reports",
				"run_id", runID,
				"dir", cfg.PerItemDir,
				"items", rep.Len())
		}
	}

	return nil
}
