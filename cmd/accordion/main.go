package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/comalice/presencex/internal/accordion"
	"github.com/comalice/presencex/internal/config"
	"github.com/comalice/presencex/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	logFile    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "accordion [sections.yaml]",
		Short:         "Terminal accordion with animated collapsible sections",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closeLog, err := f.options(args)
			if err != nil {
				return err
			}
			defer closeLog()

			m := accordion.New(opts)
			defer m.Close()
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Write logs to this file (default: discard)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug logging")
	return cmd
}

// options resolves config, sections and the log destination. The terminal
// is owned by the program, so logs never go to stderr.
func (f *flags) options(args []string) (accordion.Options, func(), error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return accordion.Options{}, nil, err
	}

	sections := accordion.DefaultSections()
	if len(args) == 1 {
		if sections, err = accordion.LoadSections(args[0]); err != nil {
			return accordion.Options{}, nil, err
		}
	}

	var w io.Writer = io.Discard
	closeLog := func() {}
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return accordion.Options{}, nil, fmt.Errorf("open log file: %w", err)
		}
		w = file
		closeLog = func() { _ = file.Close() }
	}

	level := cfg.LogLevel
	if f.debug {
		level = logging.LevelDebug
	}
	logger, err := logging.New(w, level)
	if err != nil {
		closeLog()
		return accordion.Options{}, nil, err
	}

	return accordion.Options{
		Sections:  sections,
		FrameRate: cfg.FrameRate,
		Logger:    logger,
	}, closeLog, nil
}
