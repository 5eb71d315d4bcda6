// Package cli wires the lvknap cobra commands.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvknap/internal/config"
	"github.com/katalvlaran/lvknap/internal/logging"
)

// app carries state shared by subcommands; it is filled in by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	logFile    string

	cfg    config.Config
	log    *slog.Logger
	closer io.Closer
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "lvknap",
		Short: "Solve 0/1 knapsack instances with best-first branch-and-bound",
		Long: `lvknap solves 0/1 knapsack instances exactly by best-first branch-and-bound
over the LP relaxation. Instances are read from JSON or YAML files or drawn
from a seeded random generator.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "lvknap.yaml", "configuration file (ignored when missing)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "console log format: text or json")
	flags.StringVar(&a.logFile, "log-file", "", "also write logs to this rotating file")

	// Add subcommands
	rootCmd.AddCommand(newSolveCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newBenchCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.Load(a.configPath, !explicit)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if a.logFile != "" {
		cfg.Logging.File = a.logFile
	}

	log, closer, err := logging.New(cmd.ErrOrStderr(), cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.closer = cfg, log, closer
	a.log.Debug("configuration loaded", "path", a.configPath, "explicit", explicit)

	return nil
}
