package pipeline

import (
	"context"
	"fmt"

	"log/slog"

	"audiomatch/internal/logging"
	"audiomatch/internal/queue"
	"audiomatch/internal/search"
	"audiomatch/internal/services"
)

// Searcher finds the best catalog candidate for a track descriptor.
type Searcher interface {
	Search(ctx context.Context, target search.TrackDescriptor) (search.MatchResult, bool, error)
}

// Fetcher downloads a matched track and returns the resulting file path.
type Fetcher interface {
	Fetch(ctx context.Context, url, baseName string) (string, error)
}

// Pipeline processes queued track requests end to end.
type Pipeline struct {
	store    *queue.Store
	searcher Searcher
	fetcher  Fetcher
	logger   *slog.Logger
}

// New assembles a pipeline. A nil fetcher leaves matched items in the found
// state instead of downloading them.
func New(store *queue.Store, searcher Searcher, fetcher Fetcher, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:    store,
		searcher: searcher,
		fetcher:  fetcher,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run drains the queue until no pending work remains or the context ends.
// Items left in-flight by a previous crash are reset to pending first.
func (p *Pipeline) Run(ctx context.Context) error {
	reset, err := p.store.ResetStale(ctx)
	if err != nil {
		return fmt.Errorf("reset stale items: %w", err)
	}
	if reset > 0 {
		p.logger.Info("reset stale in-flight items", logging.Int64("count", reset))
	}

	processed := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, err := p.store.NextPending(ctx)
		if err != nil {
			return fmt.Errorf("claim next pending: %w", err)
		}
		if item == nil {
			break
		}
		p.processItem(ctx, item)
		processed++
	}

	p.logger.Info("queue drained", logging.Int("processed", processed))
	return nil
}

// processItem runs one claimed item through search and download. Failures are
// persisted on the item rather than propagated; a broken item must not stall
// the rest of the queue.
func (p *Pipeline) processItem(ctx context.Context, item *queue.Item) {
	ctx = services.WithItemID(ctx, item.ID)
	ctx = services.WithRequestID(ctx, item.Token)
	logger := logging.WithContext(ctx, p.logger)

	logger.Info("processing track request",
		logging.String("title", item.Title),
		logging.String("artist", item.Artist))

	target := search.TrackDescriptor{
		Title:           item.Title,
		Artist:          item.Artist,
		DurationSeconds: item.DurationSeconds,
	}

	result, found, err := p.searcher.Search(ctx, target)
	if err != nil {
		p.persistFailure(ctx, logger, item, err, "search failed")
		return
	}
	if !found {
		item.Status = queue.StatusNoMatch
		item.ErrorMessage = "no rendition scored above the acceptance floor"
		p.persist(ctx, logger, item)
		logger.Info("no match for track request")
		return
	}

	item.SetMatch(result.URL, result.Title, result.Score)
	p.persist(ctx, logger, item)
	logger.Info("match recorded",
		logging.String("match_title", result.Title),
		logging.Int("score", result.Score),
		logging.Int("pass", result.Pass))

	if p.fetcher == nil {
		return
	}

	item.Status = queue.StatusDownloading
	p.persist(ctx, logger, item)

	path, err := p.fetcher.Fetch(ctx, result.URL, item.DisplayTitle())
	if err != nil {
		p.persistFailure(ctx, logger, item, err, "download failed")
		return
	}

	item.Status = queue.StatusCompleted
	item.OutputPath = path
	p.persist(ctx, logger, item)
	logger.Info("track request completed", logging.String("output_path", path))
}

func (p *Pipeline) persistFailure(ctx context.Context, logger *slog.Logger, item *queue.Item, cause error, stage string) {
	item.Status = services.FailureStatus(cause)
	item.ErrorMessage = cause.Error()
	p.persist(ctx, logger, item)
	logger.Error(stage,
		logging.Error(cause),
		logging.String("status", string(item.Status)))
}

func (p *Pipeline) persist(ctx context.Context, logger *slog.Logger, item *queue.Item) {
	if err := p.store.Update(ctx, item); err != nil {
		logger.Error("persist item state", logging.Error(err))
	}
}
