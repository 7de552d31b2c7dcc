package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	werrors "github.com/wippyai/watbuild/errors"
	"github.com/wippyai/watbuild/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the whole corpus whenever an input changes",
	Long: `Watch runs one full batch immediately, then watches the input directory
and re-runs the full batch after every debounced burst of .wat changes.
Each trigger does complete work over every input; there is no per-file
incremental rebuild. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg.Verbose)

		debounce, _ := cmd.Flags().GetDuration("debounce")

		runOnce := func(ctx context.Context) error {
			result, err := runBatch(ctx, cfg, os.Stdout)
			if err != nil {
				return err
			}
			fmt.Println(result.Summary())
			// Partial failures are reported but never stop the loop.
			return nil
		}

		if err := runOnce(cmd.Context()); err != nil {
			return err
		}

		w := &watch.Watcher{
			Dir:      cfg.InputDir,
			Debounce: debounce,
			Run:      runOnce,
		}
		err = w.Watch(cmd.Context())

		// Ctrl-C is the normal way out of a watch session.
		var werr *werrors.Error
		if stderrors.As(err, &werr) && werr.Kind == werrors.KindInterrupted {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a change burst triggers a batch")

	rootCmd.AddCommand(watchCmd)
}
