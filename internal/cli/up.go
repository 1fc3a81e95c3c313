package cli

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"draftdesk/internal/httpd"
	"draftdesk/internal/protocol"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the draftdesk HTTP server",
	RunE:  runUp,
}

var upListen string

func init() {
	upCmd.Flags().StringVar(&upListen, "listen", "", "host:port to listen on (overrides config)")
}

func runUp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWith(ExitConfigInvalid, "ERROR: "+err.Error())
	}
	if upListen != "" {
		cfg.Server.Listen = upListen
	}
	logger := newLogger(cfg)

	a, catalog := buildApp(cfg, logger)
	server := httpd.NewServer(httpd.ServerOptions{
		Assistant: a,
		Catalog:   catalog,
		Logger:    logger,
	})

	listener, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		exitWith(ExitBindFailure, "ERROR: server bind failure: "+err.Error())
	}

	baseURL := fmt.Sprintf("http://%s", listener.Addr().String())
	if !globalFlags.JSON {
		fmt.Println("draftdesk API:")
		fmt.Println("  Chat:  ", "POST "+baseURL+protocol.ChatPath)
		fmt.Println("  Tools: ", "GET  "+baseURL+protocol.ToolsListPath)
		fmt.Println("  Call:  ", "POST "+baseURL+protocol.ToolsCallPath)
		fmt.Println()
		fmt.Println("Run 'draftdesk chat --server", baseURL+"' in another terminal.")
	} else {
		fmt.Printf("{\"event\":\"listening\",\"url\":%q}\n", baseURL)
	}
	logger.Info("serving", "addr", listener.Addr().String(), "roots", cfg.Search.Roots)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx, listener)
}
