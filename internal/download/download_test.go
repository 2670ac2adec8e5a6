package download

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"audiomatch/internal/logging"
	"audiomatch/internal/services"
	"audiomatch/internal/testsupport"
)

func TestFetchBuildsLibraryPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	var gotURL, gotTemplate, gotFormat string
	fetcher := NewFetcher(cfg, logging.NewNop(), WithRunner(func(ctx context.Context, url, outputTemplate, audioFormat string) error {
		gotURL = url
		gotTemplate = outputTemplate
		gotFormat = audioFormat
		return nil
	}))

	path, err := fetcher.Fetch(context.Background(), "https://music.youtube.com/watch?v=abc", "The Killers - Mr. Brightside")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := filepath.Join(cfg.Paths.LibraryDir, "The Killers - Mr. Brightside.mp3")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	if gotURL != "https://music.youtube.com/watch?v=abc" {
		t.Fatalf("url = %q", gotURL)
	}
	if gotTemplate != filepath.Join(cfg.Paths.LibraryDir, "The Killers - Mr. Brightside.%(ext)s") {
		t.Fatalf("template = %q", gotTemplate)
	}
	if gotFormat != "mp3" {
		t.Fatalf("format = %q", gotFormat)
	}
}

func TestFetchHonorsConfiguredFormat(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithAudioFormat("opus"))
	fetcher := NewFetcher(cfg, logging.NewNop(), WithRunner(func(context.Context, string, string, string) error {
		return nil
	}))

	path, err := fetcher.Fetch(context.Background(), "https://example.test/watch?v=x", "song")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if filepath.Ext(path) != ".opus" {
		t.Fatalf("expected .opus extension, got %q", path)
	}
}

func TestFetchValidatesURL(t *testing.T) {
	fetcher := NewFetcher(testsupport.NewConfig(t), logging.NewNop())
	_, err := fetcher.Fetch(context.Background(), "  ", "song")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFetchWrapsToolFailure(t *testing.T) {
	fetcher := NewFetcher(testsupport.NewConfig(t), logging.NewNop(), WithRunner(func(context.Context, string, string, string) error {
		return errors.New("exit status 1")
	}))
	_, err := fetcher.Fetch(context.Background(), "https://example.test/watch?v=x", "song")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestSanitizeBaseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AC/DC: Back In Black", "AC-DC- Back In Black"},
		{"What?", "What"},
		{"  spaced   name  ", "spaced name"},
		{"trailing dots...", "trailing dots"},
		{"<>\"?", "track"},
		{"normal name", "normal name"},
	}
	for _, tc := range cases {
		if got := SanitizeBaseName(tc.in); got != tc.want {
			t.Errorf("SanitizeBaseName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
