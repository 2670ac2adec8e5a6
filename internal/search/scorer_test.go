package search

import "testing"

func TestScoreStrongMatch(t *testing.T) {
	target := TrackDescriptor{Title: "Mr. Brightside", Artist: "The Killers", DurationSeconds: 222}
	candidate := Candidate{
		ID:              "v1",
		Title:           "The Killers - Mr. Brightside (Official Music Video)",
		Uploader:        "The Killers",
		DurationSeconds: 222,
		ViewCount:       500_000_000,
	}
	// coverage 50, artist presence 20, duration 30, views 15,
	// title containment 40, exact uploader 30. "official" carries no bonus
	// next to "music video".
	if got := Score(candidate, target); got != 185 {
		t.Fatalf("Score = %d, want 185", got)
	}
}

func TestScoreKaraokeRendition(t *testing.T) {
	target := TrackDescriptor{Title: "Mr. Brightside", Artist: "The Killers", DurationSeconds: 222}
	candidate := Candidate{
		ID:              "v2",
		Title:           "Mr. Brightside (Karaoke Version)",
		Uploader:        "KaraokeFan",
		DurationSeconds: 225,
		ViewCount:       0,
	}
	// coverage 50, no artist -10, duration 30, unknown views -5,
	// title containment 40, denylist -50.
	got := Score(candidate, target)
	if got != 55 {
		t.Fatalf("Score = %d, want 55", got)
	}
	if got >= MinAcceptScore {
		t.Fatalf("karaoke rendition must fall below the acceptance floor, got %d", got)
	}
}

func TestScoreLowCoveragePenalty(t *testing.T) {
	target := TrackDescriptor{Title: "alpha beta gamma", Artist: "zeta", DurationSeconds: 200}
	candidate := Candidate{
		ID:              "v3",
		Title:           "alpha something else entirely",
		Uploader:        "zeta",
		DurationSeconds: 200,
		ViewCount:       5_000_000,
	}
	// Only one of three significant title words is covered, so the -100
	// penalty buries everything else: -100 +20 +30 +15 +8 +30 = 3.
	if got := Score(candidate, target); got != 3 {
		t.Fatalf("Score = %d, want 3", got)
	}
}

func TestScoreAcceptanceFloorBoundary(t *testing.T) {
	t.Run("exactly 100 qualifies", func(t *testing.T) {
		target := TrackDescriptor{Title: "one two", Artist: "aa bb cc"}
		candidate := Candidate{
			ID:        "v4",
			Title:     "two one extra word",
			Uploader:  "bb aa",
			ViewCount: 1_000_000,
		}
		// 50 -10 +15 +25 +20 = 100.
		got := Score(candidate, target)
		if got != MinAcceptScore {
			t.Fatalf("Score = %d, want %d", got, MinAcceptScore)
		}
		if _, ok := bestCandidate([]Candidate{candidate}, target); !ok {
			t.Fatal("a score of exactly 100 must qualify")
		}
	})
	t.Run("99 is rejected", func(t *testing.T) {
		target := TrackDescriptor{Title: "one two", Artist: "a1 a2 a3 a4 a5 a6"}
		candidate := Candidate{
			ID:        "v5",
			Title:     "two one extra word",
			Uploader:  "a1 a2 a3 a4 a5 b1 b2",
			ViewCount: 1_000_000,
		}
		// 50 -10 +15 +25 +19 = 99.
		got := Score(candidate, target)
		if got != 99 {
			t.Fatalf("Score = %d, want 99", got)
		}
		if _, ok := bestCandidate([]Candidate{candidate}, target); ok {
			t.Fatal("a score of 99 must not qualify")
		}
	})
}

func TestScoreDurationTiers(t *testing.T) {
	target := TrackDescriptor{Title: "one two", Artist: "zz", DurationSeconds: 200}
	base := Candidate{ID: "v", Title: "one two extra", Uploader: "zz", ViewCount: 50_000}

	score := func(duration int) int {
		candidate := base
		candidate.DurationSeconds = duration
		return Score(candidate, target)
	}

	unknown := score(0)
	cases := []struct {
		duration int
		delta    int
	}{
		{203, 30},
		{197, 30},
		{210, 20},
		{230, 10},
		{231, -10},
		{500, -10},
	}
	for _, tc := range cases {
		if got := score(tc.duration) - unknown; got != tc.delta {
			t.Errorf("duration %d: delta = %d, want %d", tc.duration, got, tc.delta)
		}
	}
}

func TestScoreViewTiers(t *testing.T) {
	target := TrackDescriptor{Title: "one two", Artist: "zz"}
	base := Candidate{ID: "v", Title: "one two extra", Uploader: "zz"}

	score := func(views int64) int {
		candidate := base
		candidate.ViewCount = views
		return Score(candidate, target)
	}

	neutral := score(1_000)
	cases := []struct {
		views int64
		delta int
	}{
		{1_000_000, 15},
		{100_000, 10},
		{10_000, 5},
		{999, -5},
		{0, -5},
	}
	for _, tc := range cases {
		if got := score(tc.views) - neutral; got != tc.delta {
			t.Errorf("views %d: delta = %d, want %d", tc.views, got, tc.delta)
		}
	}
}

func TestScoreFavorableKeywordCountsOnce(t *testing.T) {
	target := TrackDescriptor{Title: "one two", Artist: "zz"}
	base := Candidate{ID: "v", Uploader: "zz", ViewCount: 50_000}

	score := func(title string) int {
		candidate := base
		candidate.Title = title
		return Score(candidate, target)
	}

	plain := score("one two extra")
	single := score("one two lyrics")
	double := score("one two lyrics audio")
	if single-plain != 15 {
		t.Fatalf("favorable keyword delta = %d, want 15", single-plain)
	}
	if double != single {
		t.Fatalf("second favorable keyword must not stack: %d vs %d", double, single)
	}
}

func TestScoreOfficialAudioVersusVideo(t *testing.T) {
	target := TrackDescriptor{Title: "one two", Artist: "zz"}
	base := Candidate{ID: "v", Uploader: "zz", ViewCount: 50_000}

	score := func(title string) int {
		candidate := base
		candidate.Title = title
		return Score(candidate, target)
	}

	// "(official audio)" earns the favorable keyword and the official bonus;
	// "(official video)" earns neither.
	audio := score("one two (official audio)")
	video := score("one two (official video)")
	if audio-video != 25 {
		t.Fatalf("official audio delta = %d, want 25", audio-video)
	}
}

func TestScoreUnwantedKeywordsStack(t *testing.T) {
	target := TrackDescriptor{Title: "hello world", Artist: "zz"}
	base := Candidate{ID: "v", Uploader: "zz", ViewCount: 50_000}

	score := func(title string) int {
		candidate := base
		candidate.Title = title
		return Score(candidate, target)
	}

	one := score("hello world karaoke")
	two := score("hello world karaoke instrumental")
	if one-two != 50 {
		t.Fatalf("each denylist keyword must subtract 50, delta = %d", one-two)
	}
}

func TestScoreDeterministic(t *testing.T) {
	target := TrackDescriptor{Title: "Mr. Brightside", Artist: "The Killers", DurationSeconds: 222}
	candidate := Candidate{
		ID:              "v1",
		Title:           "The Killers - Mr. Brightside (Official Music Video)",
		Uploader:        "The Killers",
		DurationSeconds: 222,
		ViewCount:       500_000_000,
	}
	first := Score(candidate, target)
	for i := 0; i < 10; i++ {
		if got := Score(candidate, target); got != first {
			t.Fatalf("score changed between runs: %d vs %d", got, first)
		}
	}
}
