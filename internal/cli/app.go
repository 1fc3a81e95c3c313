package cli

import (
	"github.com/charmbracelet/log"

	"draftdesk/internal/assistant"
	"draftdesk/internal/config"
	"draftdesk/internal/mailclient"
	"draftdesk/internal/mistral"
	"draftdesk/internal/model"
	"draftdesk/internal/search"
	"draftdesk/internal/tools"
)

// buildApp assembles the assistant and tool catalog from configuration.
// All wiring lives here so serving and one-shot commands share it.
func buildApp(cfg config.Config, logger *log.Logger) (*assistant.Assistant, *tools.Catalog) {
	searcher := search.NewService()
	generator := mistral.NewClient(cfg.Mistral.BaseURL, cfg.Mistral.APIKey)
	generator.DefaultChatModel = cfg.Mistral.Model

	a := assistant.New(searcher, generator, mailProvider(cfg), cfg.Search.Roots, cfg.Search.FileTypes, logger)
	catalog := &tools.Catalog{
		Assistant: a,
		Searcher:  searcher,
		Roots:     cfg.Search.Roots,
		FileTypes: cfg.Search.FileTypes,
	}
	return a, catalog
}

// mailProvider prefers a configured .eml directory; otherwise the platform
// Outlook client, which reports itself unsupported off macOS and Windows.
func mailProvider(cfg config.Config) model.MailProvider {
	if cfg.Mail.EmlDir != "" {
		return &mailclient.EmlDirProvider{Dir: cfg.Mail.EmlDir}
	}
	return &mailclient.OutlookProvider{}
}
