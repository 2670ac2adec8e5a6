package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"audiomatch/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		artist     string
		duration   int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Search the catalog for the best rendition of a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matcher, err := ctx.newMatcher()
			if err != nil {
				return err
			}

			target := search.TrackDescriptor{
				Title:           args[0],
				Artist:          artist,
				DurationSeconds: duration,
			}
			result, found, err := matcher.Search(cmd.Context(), target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeSearchJSON(out, result, found)
			}
			if !found {
				fmt.Fprintln(out, "No rendition scored above the acceptance floor.")
				return nil
			}

			rows := [][]string{
				{"Title", result.Title},
				{"Uploader", result.Uploader},
				{"Duration", formatDuration(result.DurationSeconds)},
				{"Views", humanize.Comma(result.ViewCount)},
				{"Score", strconv.Itoa(result.Score)},
				{"Pass", strconv.Itoa(result.Pass)},
				{"Query", result.Query},
				{"URL", result.URL},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&artist, "artist", "a", "", "Artist name to include in the search")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Expected track duration in seconds")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	return cmd
}

type searchOutput struct {
	Found           bool   `json:"found"`
	ID              string `json:"id,omitempty"`
	Title           string `json:"title,omitempty"`
	Uploader        string `json:"uploader,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	ViewCount       int64  `json:"view_count,omitempty"`
	URL             string `json:"url,omitempty"`
	Score           int    `json:"score,omitempty"`
	Pass            int    `json:"pass,omitempty"`
	Query           string `json:"query,omitempty"`
}

func writeSearchJSON(out io.Writer, result search.MatchResult, found bool) error {
	payload := searchOutput{Found: found}
	if found {
		payload = searchOutput{
			Found:           true,
			ID:              result.ID,
			Title:           result.Title,
			Uploader:        result.Uploader,
			DurationSeconds: result.DurationSeconds,
			ViewCount:       result.ViewCount,
			URL:             result.URL,
			Score:           result.Score,
			Pass:            result.Pass,
			Query:           result.Query,
		}
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode search result: %w", err)
	}
	encoded = append(encoded, '\n')
	_, err = out.Write(encoded)
	return err
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
