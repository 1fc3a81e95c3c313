package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"draftdesk/internal/search"
	"draftdesk/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the configured roots for matching files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWith(ExitConfigInvalid, "ERROR: "+err.Error())
	}
	query := strings.Join(args, " ")

	res, err := search.NewService().Search(cmd.Context(), query, cfg.Search.Roots, cfg.Search.FileTypes)
	if err != nil {
		return err
	}

	if globalFlags.JSON {
		return json.NewEncoder(os.Stdout).Encode(res)
	}
	if len(res.Matches) == 0 {
		fmt.Println(ui.Dim(fmt.Sprintf("No files matched %q.", query)))
		return nil
	}
	fmt.Printf("Found %d file(s) matching %q:\n", res.TotalMatchCount, query)
	for _, m := range res.Matches {
		fmt.Println(ui.Keyword.Render(m.Path))
		for _, p := range m.Preview {
			fmt.Printf("  %s %s\n", ui.Dim(fmt.Sprintf("%d:", p.LineNumber)), p.LineText)
		}
	}
	return nil
}
