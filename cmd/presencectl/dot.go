package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comalice/presencex"
	"github.com/comalice/presencex/internal/primitives"
	"github.com/comalice/presencex/internal/production"
)

func dotCmd(g *globals) *cobra.Command {
	var (
		current  string
		snapshot string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "dot [table.yaml]",
		Short: "Export a transition table as Graphviz DOT",
		Long: `Export a transition table as Graphviz DOT.

Without arguments the built-in presence table is exported. --snapshot
loads a persisted machine from the configured state directory and
highlights its current state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg primitives.TableConfig
			switch {
			case snapshot != "":
				if len(args) > 0 {
					return errors.New("--snapshot and a table file are mutually exclusive")
				}
				if g.cfg.StateDir == "" {
					return errors.New("--snapshot requires state_dir in the config file")
				}
				persister, err := production.NewPersister(g.cfg.PersistFormat, g.cfg.StateDir)
				if err != nil {
					return err
				}
				snap, err := persister.Load(context.Background(), snapshot)
				if err != nil {
					return err
				}
				cfg = snap.Config
				if current == "" {
					current = snap.Current
				}
			case len(args) == 1:
				loaded, err := loadTable(args[0])
				if err != nil {
					return err
				}
				cfg = loaded
			default:
				cfg = presenceConfig()
			}

			viz := &production.DefaultVisualizer{}
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := viz.ExportJSON(cfg)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			_, err := fmt.Fprint(out, viz.ExportDOT(cfg, current))
			return err
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "State to highlight")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "Machine id of a persisted snapshot to export")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Export JSON instead of DOT")
	return cmd
}

func presenceConfig() primitives.TableConfig {
	return primitives.ConfigFromTable("presence", presencex.StateMounted, presencex.PresenceTable())
}

func loadTable(path string) (primitives.TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return primitives.TableConfig{}, err
	}
	cfg, err := primitives.LoadTableConfig(data)
	if err != nil {
		return primitives.TableConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
