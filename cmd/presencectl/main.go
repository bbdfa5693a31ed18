package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comalice/presencex/internal/config"
	"github.com/comalice/presencex/internal/logging"
)

func main() {
	if err := logging.Configure(logging.LevelWarn); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globals are the persistent flags shared by every subcommand.
type globals struct {
	debug      bool
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "presencectl",
		Short:         "Replay and inspect presence state machines",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg

			level := cfg.LogLevel
			if g.debug {
				level = logging.LevelDebug
			}
			return logging.Configure(level)
		},
	}
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to a YAML config file")

	root.AddCommand(runCmd(g))
	root.AddCommand(dotCmd(g))
	root.AddCommand(validateCmd())
	return root
}
