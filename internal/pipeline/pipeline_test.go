package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"audiomatch/internal/logging"
	"audiomatch/internal/pipeline"
	"audiomatch/internal/queue"
	"audiomatch/internal/search"
	"audiomatch/internal/services"
	"audiomatch/internal/testsupport"
)

type fakeSearcher struct {
	calls  int
	result search.MatchResult
	found  bool
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, target search.TrackDescriptor) (search.MatchResult, bool, error) {
	f.calls++
	return f.result, f.found, f.err
}

type fakeFetcher struct {
	calls int
	path  string
	err   error
	urls  []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url, baseName string) (string, error) {
	f.calls++
	f.urls = append(f.urls, url)
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

func matchResult(url, title string, score int) search.MatchResult {
	return search.MatchResult{
		ScoredCandidate: search.ScoredCandidate{
			Candidate: search.Candidate{ID: "vid", Title: title, URL: url},
			Score:     score,
		},
		Pass:  1,
		Query: "q",
	}
}

func TestRunCompletesMatchedItem(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	item := testsupport.AddTrack(t, store, "some song", "some band", 200)

	searcher := &fakeSearcher{
		result: matchResult("https://music.youtube.com/watch?v=vid", "some song (official audio)", 185),
		found:  true,
	}
	fetcher := &fakeFetcher{path: "/library/some band - Some Song.mp3"}

	p := pipeline.New(store, searcher, fetcher, logging.NewNop())
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
	if got.MatchURL != "https://music.youtube.com/watch?v=vid" || got.MatchScore != 185 {
		t.Fatalf("match fields not persisted: %+v", got)
	}
	if got.OutputPath != "/library/some band - Some Song.mp3" {
		t.Fatalf("output path = %q", got.OutputPath)
	}
	if fetcher.calls != 1 || fetcher.urls[0] != got.MatchURL {
		t.Fatalf("fetcher not driven by the match: %+v", fetcher)
	}
}

func TestRunWithoutFetcherStopsAtFound(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	item := testsupport.AddTrack(t, store, "some song", "", 0)

	searcher := &fakeSearcher{
		result: matchResult("https://example.test/watch?v=vid", "some song", 150),
		found:  true,
	}
	p := pipeline.New(store, searcher, nil, logging.NewNop())
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusFound {
		t.Fatalf("status = %s, want found", got.Status)
	}
}

func TestRunMarksNoMatch(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	item := testsupport.AddTrack(t, store, "obscure song", "", 0)

	p := pipeline.New(store, &fakeSearcher{found: false}, nil, logging.NewNop())
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusNoMatch {
		t.Fatalf("status = %s, want no_match", got.Status)
	}
	if got.ErrorMessage == "" {
		t.Fatal("expected a human-readable reason on the item")
	}
}

func TestRunFailureDoesNotStallQueue(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	broken := testsupport.AddTrack(t, store, "broken", "", 0)
	healthy := testsupport.AddTrack(t, store, "healthy", "", 0)

	searcher := &fakeSearcher{}
	searcher.err = services.Wrap(services.ErrTransient, "search", "collect candidates", "catalog unreachable", errors.New("connection refused"))
	// First item fails, second succeeds.
	calls := 0
	p := pipeline.New(store, searcherFunc(func(ctx context.Context, target search.TrackDescriptor) (search.MatchResult, bool, error) {
		calls++
		if target.Title == "broken" {
			return search.MatchResult{}, false, searcher.err
		}
		return matchResult("https://example.test/watch?v=ok", "healthy", 150), true, nil
	}), nil, logging.NewNop())

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected both items processed, got %d searches", calls)
	}

	gotBroken, err := store.GetByID(context.Background(), broken.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gotBroken.Status != queue.StatusFailed {
		t.Fatalf("broken item status = %s, want failed", gotBroken.Status)
	}
	if gotBroken.ErrorMessage == "" {
		t.Fatal("expected error message persisted")
	}

	gotHealthy, err := store.GetByID(context.Background(), healthy.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gotHealthy.Status != queue.StatusFound {
		t.Fatalf("healthy item status = %s, want found", gotHealthy.Status)
	}
}

type searcherFunc func(ctx context.Context, target search.TrackDescriptor) (search.MatchResult, bool, error)

func (f searcherFunc) Search(ctx context.Context, target search.TrackDescriptor) (search.MatchResult, bool, error) {
	return f(ctx, target)
}

func TestRunDownloadFailure(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	item := testsupport.AddTrack(t, store, "some song", "", 0)

	searcher := &fakeSearcher{
		result: matchResult("https://example.test/watch?v=vid", "some song", 150),
		found:  true,
	}
	fetcher := &fakeFetcher{err: services.Wrap(services.ErrExternalTool, "download", "run yt-dlp", "exit status 1", nil)}

	p := pipeline.New(store, searcher, fetcher, logging.NewNop())
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", got.Status)
	}
	// The match survives on the item for inspection even though the
	// download failed.
	if got.MatchURL == "" {
		t.Fatal("expected match fields retained")
	}
}

func TestRunResetsStaleItems(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	stale := testsupport.AddTrack(t, store, "stale", "", 0)
	stale.Status = queue.StatusDownloading
	if err := store.Update(context.Background(), stale); err != nil {
		t.Fatalf("Update: %v", err)
	}

	searcher := &fakeSearcher{
		result: matchResult("https://example.test/watch?v=vid", "stale", 150),
		found:  true,
	}
	p := pipeline.New(store, searcher, nil, logging.NewNop())
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if searcher.calls != 1 {
		t.Fatalf("stale item must be reprocessed, got %d searches", searcher.calls)
	}
	got, err := store.GetByID(context.Background(), stale.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusFound {
		t.Fatalf("status = %s, want found", got.Status)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.AddTrack(t, store, "a", "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := pipeline.New(store, &fakeSearcher{}, nil, logging.NewNop())
	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
