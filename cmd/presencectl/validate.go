package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/presencex/internal/primitives"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <table.yaml>...",
		Short: "Check transition tables for dangling and unreachable states",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				cfg, err := loadTable(path)
				if err == nil {
					_, err = primitives.Compile[string, string](cfg)
				}
				if err != nil {
					failed++
					fmt.Fprintln(out, errorMsg("%v", err))
					continue
				}
				fmt.Fprintln(out, successMsg("%s: %d states, version %s", cfg.ID, len(cfg.States), primitives.ComputeVersion(&cfg)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d tables invalid", failed, len(args))
			}
			return nil
		},
	}
}
