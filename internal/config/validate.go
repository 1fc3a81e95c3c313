package config

import (
	"fmt"
	"net"
	"strings"
)

// Validate rejects configurations that cannot produce a working process.
// Search roots are deliberately not checked for existence: a missing root
// is a recoverable per-search condition, not a startup failure.
func Validate(cfg Config) error {
	listen := strings.TrimSpace(cfg.Server.Listen)
	if listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if _, _, err := net.SplitHostPort(listen); err != nil {
		return fmt.Errorf("server.listen %q is not host:port: %w", listen, err)
	}

	if len(cfg.Search.Roots) == 0 {
		return fmt.Errorf("search.roots must name at least one directory")
	}
	for _, ft := range cfg.Search.FileTypes {
		ft = strings.TrimSpace(ft)
		if ft == "" || !strings.HasPrefix(ft, ".") {
			return fmt.Errorf("search.file_types entry %q must start with a dot", ft)
		}
	}

	if strings.TrimSpace(cfg.Mistral.BaseURL) == "" {
		return fmt.Errorf("mistral.base_url is required")
	}
	if strings.TrimSpace(cfg.Mistral.Model) == "" {
		return fmt.Errorf("mistral.model is required")
	}
	return nil
}
