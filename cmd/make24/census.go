package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"svw.info/make24/internal/census"
)

var censusCmd = &cobra.Command{
	Use:   "census",
	Short: "Solve every digit multiset and report which reach the target",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		workers, _ := cmd.Flags().GetInt("workers")
		asJSON, _ := cmd.Flags().GetBool("json")
		showAll, _ := cmd.Flags().GetBool("all")

		rep, err := census.Run(cmd.Context(), newSearch(cfg.Game), census.Options{
			Count:    cfg.Game.NumCount,
			MinDigit: cfg.Game.MinDigit,
			MaxDigit: cfg.Game.MaxDigit,
			Workers:  workers,
		})
		if err != nil {
			return err
		}
		logger.Debug("census done", "sets", len(rep.Entries))

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		for _, e := range rep.Entries {
			switch {
			case e.Solvable && showAll:
				fmt.Fprintf(out, "%-12s %s\n", e.Digits, e.Solution)
			case !e.Solvable:
				fmt.Fprintf(out, "%-12s unsolvable\n", e.Digits)
			}
		}
		fmt.Fprintf(out, "%d sets: %d solvable, %d unsolvable\n", len(rep.Entries), rep.Solvable, rep.Unsolvable)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(censusCmd)
	censusCmd.Flags().Int("workers", 0, "concurrent searches (0 uses every CPU)")
	censusCmd.Flags().Bool("json", false, "print the full report as JSON")
	censusCmd.Flags().Bool("all", false, "list solvable sets with their solutions too")
}
