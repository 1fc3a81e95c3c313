package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"draftdesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create " + config.DefaultFileName + " with defaults",
	RunE:  runConfigInit,
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print effective config as TOML (secrets redacted)",
	RunE:  runConfigPrint,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPrintCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := globalFlags.ConfigPath
	if err := config.Save(path, config.Default()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Println("Wrote", path)

	// The API key stays out of the file; offer to set it via the shell.
	if IsTTY() {
		fmt.Fprintln(os.Stderr, "Optional: enter your Mistral API key now (input is hidden). Press Enter to skip and set MISTRAL_API_KEY later.")
		key, err := ReadSecret("Mistral API key: ")
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if key != "" {
			fmt.Fprintln(os.Stderr, "Key received. Set it in your environment before running 'draftdesk up':")
			fmt.Fprintln(os.Stderr, "  export MISTRAL_API_KEY=<your key>")
		}
	}
	return nil
}

func runConfigPrint(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWith(ExitConfigInvalid, "ERROR: "+err.Error())
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	fmt.Print(buf.String())
	if cfg.Mistral.APIKey != "" {
		fmt.Println("# MISTRAL_API_KEY is set (redacted)")
	} else {
		fmt.Println("# MISTRAL_API_KEY is not set")
	}
	return nil
}
