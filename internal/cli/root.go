// Package cli wires the draftdesk commands: serving the HTTP API, the
// interactive chat, and one-shot search and draft invocations.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"draftdesk/internal/config"
)

const (
	ExitSuccess       = 0
	ExitGenericError  = 1
	ExitConfigInvalid = 2
	ExitBindFailure   = 3
)

// GlobalFlags holds flags shared across all commands.
type GlobalFlags struct {
	ConfigPath string
	Roots      []string
	JSON       bool
	Verbose    bool
}

var globalFlags GlobalFlags

var rootCmd = &cobra.Command{
	Use:   "draftdesk",
	Short: "Local email-drafting assistant grounded in your own files",
	Long: "draftdesk serves a small tool API over your local documents and mail,\n" +
		"and drafts emails in your own voice using the patterns it finds there.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigPath, "config", config.DefaultFileName, "config file path")
	rootCmd.PersistentFlags().StringSliceVar(&globalFlags.Roots, "roots", nil, "override search roots")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.JSON, "json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig applies global flag overrides on top of the layered config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(globalFlags.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if len(globalFlags.Roots) > 0 {
		cfg.Search.Roots = globalFlags.Roots
	}
	if globalFlags.Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *log.Logger {
	logger := log.New(os.Stderr)
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// exitWith prints message to stderr and exits with code.
func exitWith(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}
