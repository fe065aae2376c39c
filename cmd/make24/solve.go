package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"svw.info/make24/internal/domain"
)

var solveCmd = &cobra.Command{
	Use:   "solve N N N N",
	Short: "Find an expression reaching the target",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		digits, err := parseDigits(args)
		if err != nil {
			return err
		}
		sol, st, err := newSearch(cfg.Game).Solve(cmd.Context(), digits)
		if err != nil {
			return err
		}
		logger.Debug("search done", "nodes", st.Nodes, "dur", st.Duration)
		out := cmd.OutOrStdout()
		if sol == nil {
			fmt.Fprintf(out, "No solution for %s\n", digits)
			return nil
		}
		fmt.Fprintf(out, "%s = %s\n", sol.Expression, strconv.FormatFloat(cfg.Game.Target, 'g', -1, 64))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
}

func parseDigits(args []string) (domain.Digits, error) {
	out := make(domain.Digits, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidDigits, a)
		}
		out = append(out, n)
	}
	return out, nil
}
