package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sophialabs/ringconsole/internal/app"
)

type flags struct {
	configFile  string
	capacity    int
	logLevel    string
	noColor     bool
	historyFile string
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configFile, "config", "c", "", "YAML config file")
	fs.IntVarP(&f.capacity, "capacity", "n", 0, "buffer capacity (prompted for when 0)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.BoolVar(&f.noColor, "no-color", false, "disable coloured output")
	fs.StringVar(&f.historyFile, "history-file", "", "file to persist input history in")
}

// config layers defaults, the config file and explicitly set flags, in that order.
func (f *flags) config(fs *pflag.FlagSet) (app.Config, error) {
	cfg := app.DefaultConfig()
	if f.configFile != "" {
		var err error
		if cfg, err = app.LoadConfigFile(f.configFile, cfg); err != nil {
			return cfg, err
		}
	}
	if fs.Changed("capacity") {
		cfg.Capacity = f.capacity
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fs.Changed("no-color") {
		cfg.Color = !f.noColor
	}
	if fs.Changed("history-file") {
		cfg.HistoryFile = f.historyFile
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "ringconsole",
		Short:         "Interactive fixed-capacity ring buffer console",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.config(cmd.Flags())
			if err != nil {
				return err
			}
			a, err := app.New(cfg, app.Streams{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
				Err: cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			return a.Run(cmd.Context())
		},
	}
	f.register(cmd.Flags())
	return cmd
}
