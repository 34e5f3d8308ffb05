package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"apngforge/internal/buildspec"
	"apngforge/internal/config"
	"apngforge/internal/queue"
)

// ErrAlreadyRunning indicates another processor holds the lock file.
var ErrAlreadyRunning = errors.New("another apngforge processor is already running")

// Runner processes pending queue items sequentially.
type Runner struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
	lock   *flock.Flock
}

// Summary reports the outcome of one processing pass.
type Summary struct {
	RunID  string
	Loaded int
	Failed int
}

// New constructs a runner with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || store == nil || logger == nil {
		return nil, errors.New("runner requires config, store, and logger")
	}
	return &Runner{
		cfg:    cfg,
		store:  store,
		logger: logger,
		lock:   flock.New(cfg.LockFilePath()),
	}, nil
}

// Run drains the pending queue, loading each spec and recording its outcome.
// The lock file is held for the whole pass so concurrent invocations fail
// fast instead of interleaving.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	ok, err := r.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, ErrAlreadyRunning
	}
	defer func() { _ = r.lock.Unlock() }()

	summary := Summary{RunID: uuid.NewString()}
	logger := r.logger.With("run_id", summary.RunID)
	logger.Info("batch run started", "queue_db", r.store.Path())

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		item, err := r.store.NextPending(ctx)
		if err != nil {
			return summary, fmt.Errorf("next pending item: %w", err)
		}
		if item == nil {
			break
		}

		if err := r.store.MarkLoading(ctx, item.ID, summary.RunID); err != nil {
			return summary, fmt.Errorf("mark loading: %w", err)
		}

		doc, loadErr := buildspec.Load(item.SpecPath)
		if loadErr != nil {
			summary.Failed++
			logger.Warn("spec load failed", "item", item.ID, "spec", item.SpecPath, "error", loadErr)
			if err := r.store.MarkFailed(ctx, item.ID, loadErr.Error()); err != nil {
				return summary, fmt.Errorf("mark failed: %w", err)
			}
			continue
		}

		summary.Loaded++
		logger.Info("spec loaded",
			"item", item.ID,
			"spec", item.SpecPath,
			"name", doc.Name(),
			"frames", doc.FrameCount(),
		)
		if err := r.store.MarkLoaded(ctx, item.ID, doc.Name(), doc.FrameCount(), doc.Loops(), doc.SkipFirst()); err != nil {
			return summary, fmt.Errorf("mark loaded: %w", err)
		}
	}

	logger.Info("batch run finished", "loaded", summary.Loaded, "failed", summary.Failed)
	return summary, nil
}
