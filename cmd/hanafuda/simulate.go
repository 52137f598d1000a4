package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ceruleanoak/hanafuda-sub004/internal/sim"
)

var flagCount int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "play one or more matches headless with the built-in policy on every seat",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, opts, log, err := setup()
		if err != nil {
			return err
		}
		led, err := openLedger(cfg, log)
		if err != nil {
			return err
		}
		if led != nil {
			defer led.Close()
		}

		runner := &sim.Runner{Opts: opts, Log: log, Ledger: led}
		wins, results, err := runner.RunMany(cmd.Context(), flagCount)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, res := range results {
			fmt.Fprintf(out, "match %d (seed %d): winner seat %d, scores %v\n",
				i+1, opts.Seed+uint64(i), res.Winner, res.Scores)
		}
		if flagCount > 1 {
			fmt.Fprintf(out, "wins by seat: %v\n", wins)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&flagCount, "count", 1, "number of matches to simulate (seeds advance by one)")
	rootCmd.AddCommand(simulateCmd)
}
