package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"audiomatch/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process every pending track request in the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// One runner at a time; concurrent runners would fight over
			// claimed items and library files.
			lock := flock.New(filepath.Join(cfg.Paths.StateDir, "audiomatch.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another audiomatch run is already active")
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			matcher, err := ctx.newMatcher()
			if err != nil {
				return err
			}

			// Assign through the interface only when downloads are enabled;
			// a typed nil pointer would defeat the pipeline's nil check.
			var fetcher pipeline.Fetcher
			if f, err := ctx.newFetcher(); err != nil {
				return err
			} else if f != nil {
				fetcher = f
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return pipeline.New(store, matcher, fetcher, logger).Run(runCtx)
		},
	}
}
