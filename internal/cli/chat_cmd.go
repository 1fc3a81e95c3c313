package cli

import (
	"github.com/spf13/cobra"

	"draftdesk/internal/chatui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat against a running server",
	RunE:  runChat,
}

var (
	chatServer    string
	chatNoContext bool
)

func init() {
	chatCmd.Flags().StringVar(&chatServer, "server", "", "server base URL (default http://<configured listen>)")
	chatCmd.Flags().BoolVar(&chatNoContext, "no-context", false, "start with personal context disabled")
}

func runChat(cmd *cobra.Command, _ []string) error {
	baseURL := chatServer
	if baseURL == "" {
		cfg, err := loadConfig()
		if err != nil {
			exitWith(ExitConfigInvalid, "ERROR: "+err.Error())
		}
		baseURL = "http://" + cfg.Server.Listen
	}
	return chatui.Run(cmd.Context(), chatui.Options{
		BaseURL:    baseURL,
		UseContext: !chatNoContext,
	})
}
