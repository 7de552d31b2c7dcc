package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wippyai/watbuild/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs recorded in the ledger",
	Long: `History reads the run ledger written by --ledger and lists recent runs,
newest first. With --run it prints the exact command lines one run echoed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("ledger")
		limit, _ := cmd.Flags().GetInt("limit")
		runID, _ := cmd.Flags().GetInt64("run")

		store, err := ledger.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		if runID > 0 {
			commands, err := store.JobCommands(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				return fmt.Errorf("no jobs recorded for run %d", runID)
			}
			for _, c := range commands {
				fmt.Println(c)
			}
			return nil
		}

		runs, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		for _, r := range runs {
			status := fmt.Sprintf("%d converted, %d failed", r.Converted, r.Failed)
			if r.Interrupted {
				status += " [interrupted]"
			}
			fmt.Printf("%4d  %s  %-30s %s -> %s  (%dms)\n",
				r.ID,
				r.Started.Local().Format(time.DateTime),
				status,
				r.InputDir, r.OutputDir,
				r.DurationMS)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("ledger", "watbuild.db", "path to the run ledger database")
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "print the command lines of this run id")

	rootCmd.AddCommand(historyCmd)
}
