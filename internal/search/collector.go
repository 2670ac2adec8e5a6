package search

import (
	"context"
	"log/slog"

	"audiomatch/internal/logging"
)

// collectModes is the fixed order filter modes are queried in. Output order
// follows this sequence, so curated tracks surface ahead of uploads when
// scores tie.
var collectModes = []FilterMode{FilterCurated, FilterUploads, FilterNone}

// Collector gathers candidates for one query across every catalog filter
// mode and deduplicates them by backend ID.
type Collector struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewCollector wraps the supplied catalog. A nil logger is replaced with a
// no-op logger.
func NewCollector(catalog Catalog, logger *slog.Logger) *Collector {
	return &Collector{
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "collector"),
	}
}

// Collect runs the query under each filter mode and returns the deduplicated
// concatenation in mode order. A candidate whose ID was already seen in an
// earlier mode is discarded even when its fields differ. A failing mode
// contributes zero candidates and is logged at warning level; the remaining
// modes still run, so a completely unreachable catalog yields an empty slice,
// never an error.
func (c *Collector) Collect(ctx context.Context, query string, limit int) []Candidate {
	seen := make(map[string]struct{})
	var collected []Candidate

	for _, mode := range collectModes {
		results, err := c.catalog.Search(ctx, query, mode, limit)
		if err != nil {
			c.logger.Warn("catalog search failed for filter mode",
				logging.String("filter_mode", string(mode)),
				logging.String("query", query),
				logging.Error(err))
			continue
		}
		for _, candidate := range results {
			if candidate.ID == "" {
				continue
			}
			if _, dup := seen[candidate.ID]; dup {
				continue
			}
			seen[candidate.ID] = struct{}{}
			collected = append(collected, candidate)
		}
	}

	c.logger.Debug("candidates collected",
		logging.String("query", query),
		logging.Int("unique_candidates", len(collected)))
	return collected
}
