package search

import (
	"context"
	"errors"
	"testing"

	"audiomatch/internal/logging"
)

type fakeCatalog struct {
	calls   int
	queries []string
	respond func(query string, mode FilterMode) ([]Candidate, error)
}

func (f *fakeCatalog) Search(ctx context.Context, query string, mode FilterMode, limit int) ([]Candidate, error) {
	f.calls++
	f.queries = append(f.queries, query)
	if f.respond == nil {
		return nil, nil
	}
	return f.respond(query, mode)
}

func TestCollectDeduplicatesAcrossModes(t *testing.T) {
	catalog := &fakeCatalog{respond: func(query string, mode FilterMode) ([]Candidate, error) {
		switch mode {
		case FilterCurated:
			return []Candidate{
				{ID: "a", Title: "curated a"},
				{ID: "b", Title: "curated b"},
			}, nil
		case FilterUploads:
			return []Candidate{
				{ID: "b", Title: "uploads b"},
				{ID: "c", Title: "uploads c"},
			}, nil
		default:
			return nil, errors.New("unfiltered down")
		}
	}}

	collector := NewCollector(catalog, logging.NewNop())
	collected := collector.Collect(context.Background(), "q", 10)

	if len(collected) != 3 {
		t.Fatalf("expected 3 unique candidates, got %d", len(collected))
	}
	if collected[0].ID != "a" || collected[1].ID != "b" || collected[2].ID != "c" {
		t.Fatalf("unexpected order: %+v", collected)
	}
	// The first sighting wins even when a later mode reports different fields.
	if collected[1].Title != "curated b" {
		t.Fatalf("duplicate must keep first-seen fields, got %q", collected[1].Title)
	}
	if catalog.calls != 3 {
		t.Fatalf("expected all 3 modes queried, got %d", catalog.calls)
	}
}

func TestCollectDropsEmptyIDs(t *testing.T) {
	catalog := &fakeCatalog{respond: func(query string, mode FilterMode) ([]Candidate, error) {
		if mode == FilterCurated {
			return []Candidate{{ID: "", Title: "no id"}, {ID: "x", Title: "ok"}}, nil
		}
		return nil, nil
	}}

	collector := NewCollector(catalog, logging.NewNop())
	collected := collector.Collect(context.Background(), "q", 10)

	if len(collected) != 1 || collected[0].ID != "x" {
		t.Fatalf("expected only the identified candidate, got %+v", collected)
	}
}

func TestCollectToleratesTotalCatalogFailure(t *testing.T) {
	catalog := &fakeCatalog{respond: func(string, FilterMode) ([]Candidate, error) {
		return nil, errors.New("connection refused")
	}}

	collector := NewCollector(catalog, logging.NewNop())
	collected := collector.Collect(context.Background(), "q", 10)

	if len(collected) != 0 {
		t.Fatalf("expected no candidates, got %+v", collected)
	}
	if catalog.calls != 3 {
		t.Fatalf("every mode must still be attempted, got %d calls", catalog.calls)
	}
}
