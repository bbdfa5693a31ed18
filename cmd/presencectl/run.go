package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comalice/presencex"
	"github.com/comalice/presencex/internal/production"
	"github.com/comalice/presencex/internal/scenario"
)

func runCmd(g *globals) *cobra.Command {
	var (
		stateDir string
		format   string
		traced   bool
		events   bool
	)
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Replay scenario files against the fake platform",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			if !cmd.Flags().Changed("state-dir") {
				stateDir = cfg.StateDir
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.PersistFormat
			}
			if !cmd.Flags().Changed("trace") {
				traced = cfg.Trace
			}

			out := cmd.OutOrStdout()
			var telemetry *telemetryOutput
			if traced {
				telemetry = newTelemetryOutput(out)
				defer telemetry.Close()
			}

			failed := 0
			for _, path := range args {
				sc, err := scenario.Load(path)
				if err != nil {
					return err
				}

				opts := []presencex.Option{presencex.WithID(sc.Name), presencex.WithLogger(slog.Default())}
				if stateDir != "" {
					persister, err := production.NewPersister(format, stateDir)
					if err != nil {
						return err
					}
					opts = append(opts, presencex.WithPersister(persister))
				}
				if telemetry != nil {
					pub, err := production.NewTracePublisher(telemetry.Tracer("presencectl"))
					if err != nil {
						return err
					}
					opts = append(opts, presencex.WithPublisher(pub))
				}
				var published chan presencex.MachineMetadata
				if events {
					published = make(chan presencex.MachineMetadata, 64)
					opts = append(opts, presencex.WithPublisher(production.NewChannelPublisher(published)))
				}

				fmt.Fprintln(out, infoMsg("%s %s", boldStyle.Render(sc.Name), mutedStyle.Render(sc.Description)))
				res, err := scenario.Run(sc, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, traceTable(res))
				if published != nil {
					for md := range published {
						fmt.Fprintf(out, "  published: %s -> %s (%s)\n", md.From, md.To, md.Event)
					}
				}

				if res.Passed() {
					fmt.Fprintln(out, successMsg("%s passed, final state %s", sc.Name, res.FinalState()))
				} else {
					failed++
					fmt.Fprintln(out, errorMsg("%s: %v", sc.Name, res.Failure))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stateDir, "state-dir", "", "Persist machine snapshots to this directory")
	cmd.Flags().StringVar(&format, "format", "json", "Snapshot format: json or yaml")
	cmd.Flags().BoolVar(&traced, "trace", false, "Print an OpenTelemetry span per transition")
	cmd.Flags().BoolVar(&events, "events", false, "Print published transitions after each scenario")
	return cmd
}

func traceTable(res *scenario.Result) string {
	rows := make([][]string, 0, len(res.Trace))
	for _, e := range res.Trace {
		rows = append(rows, []string{
			strconv.Itoa(e.Step),
			e.Action,
			stateText(string(e.State)),
			boolText(e.Visible),
			boolText(e.Rendered),
			e.Height,
		})
	}
	return renderTable([]string{"#", "Action", "State", "Visible", "Rendered", "Height"}, rows)
}
