package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"draftdesk/internal/ui"
)

var draftCmd = &cobra.Command{
	Use:   "draft <instruction>",
	Short: "Draft an email from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDraft,
}

var draftNoContext bool

func init() {
	draftCmd.Flags().BoolVar(&draftNoContext, "no-context", false, "draft without gathering personal context")
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWith(ExitConfigInvalid, "ERROR: "+err.Error())
	}
	logger := newLogger(cfg)
	a, _ := buildApp(cfg, logger)

	instruction := strings.Join(args, " ")
	res, err := a.Draft(cmd.Context(), instruction, !draftNoContext)
	if err != nil {
		return err
	}

	if globalFlags.JSON {
		return json.NewEncoder(os.Stdout).Encode(res)
	}
	fmt.Println(res.Text)
	if len(res.Sources) > 0 {
		fmt.Println()
		fmt.Println(ui.Dim("Sources: " + strings.Join(res.Sources, ", ")))
	}
	return nil
}
