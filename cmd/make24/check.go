package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   `check "EXPRESSION" N N N N`,
	Short: "Validate an expression against a digit set",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		digits, err := parseDigits(args[1:])
		if err != nil {
			return err
		}
		res, err := newValidator(cfg.Game).Validate(args[0], digits)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		value := strconv.FormatFloat(res, 'g', -1, 64)
		if res == cfg.Game.Target {
			fmt.Fprintf(out, "Correct! %s = %s\n", args[0], value)
			return nil
		}
		fmt.Fprintf(out, "%s = %s, not %s\n", args[0], value, strconv.FormatFloat(cfg.Game.Target, 'g', -1, 64))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
