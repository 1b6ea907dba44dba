package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/hyperstore/internal/containers/store"
	"github.com/zjrosen/hyperstore/internal/log"
	"github.com/zjrosen/hyperstore/internal/presentation"
	"github.com/zjrosen/hyperstore/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the container list every time the database changes",
		Long: `Print the container list as one JSON array per line, first immediately and
then after every change to the database file, including changes made by
other processes. Runs until interrupted.

Examples:
  hyperstore containers watch
  hyperstore containers watch --debounce 1s | jq -c 'map({name, status})'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			repo, err := a.repository(ctx)
			if err != nil {
				return err
			}

			w, err := watcher.New(a.cfg.Database.Path, debounce)
			if err != nil {
				return err
			}
			changes := w.Run(ctx)
			if a.cache != nil {
				changes = store.FlushOnChange(ctx, a.cache, changes)
			}

			out := cmd.OutOrStdout()
			for {
				containers, err := repo.List(ctx)
				if ctx.Err() != nil {
					return nil
				}
				if err != nil {
					return err
				}
				if err := presentation.NewFormatter(out).FormatLine(presentation.FromDomainContainers(containers)); err != nil {
					return err
				}

				if _, ok := <-changes; !ok {
					log.Debug(log.CatCLI, "Stopped watching", "path", a.cfg.Database.Path)
					return nil
				}
			}
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "quiet period after the last write before printing")
	return cmd
}
