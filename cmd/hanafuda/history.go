package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "list finished matches recorded in the score ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, log, err := setup()
		if err != nil {
			return err
		}
		led, err := openLedger(cfg, log)
		if err != nil {
			return err
		}
		if led == nil {
			return fmt.Errorf("no ledger configured; set --ledger or ledger_path")
		}
		defer led.Close()

		records, err := led.History(cmd.Context(), flagLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "no finished matches recorded")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintf(out, "%s  %-10s  %dp  winner=%d  scores=%v\n",
				rec.ID, rec.Variant, rec.Players, rec.Winner, rec.Scores)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "maximum matches to list")
	rootCmd.AddCommand(historyCmd)
}
