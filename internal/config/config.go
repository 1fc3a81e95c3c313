// Package config loads draftdesk configuration with layered precedence:
// built-in defaults, then an optional TOML file, then .env/.env.local,
// then process environment variables. The resulting Config is a plain
// value handed to constructors; nothing reads configuration globally.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultListen    = "127.0.0.1:8311"
	DefaultBaseURL   = "https://api.mistral.ai"
	DefaultChatModel = "mistral-small-latest"
	DefaultFileName  = "draftdesk.toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Search  SearchConfig  `toml:"search"`
	Mistral MistralConfig `toml:"mistral"`
	Mail    MailConfig    `toml:"mail"`
	Verbose bool          `toml:"verbose"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
}

type SearchConfig struct {
	// Roots is the ordered list of directories searched for email-like
	// context files. Duplicates are tolerated.
	Roots     []string `toml:"roots"`
	FileTypes []string `toml:"file_types"`
}

type MistralConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	// APIKey is populated from MISTRAL_API_KEY only; it is never read from
	// or written to the TOML file.
	APIKey string `toml:"-"`
}

type MailConfig struct {
	// EmlDir points at a directory of .eml files used as the mail-context
	// source when the platform client is unavailable.
	EmlDir string `toml:"eml_dir"`
}

func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Server: ServerConfig{Listen: DefaultListen},
		Search: SearchConfig{
			Roots: []string{
				filepath.Join(home, "Documents"),
				filepath.Join(home, "Desktop"),
				".",
			},
			FileTypes: []string{".eml", ".msg", ".txt", ".md", ".html", ".json", ".csv", ".log"},
		},
		Mistral: MistralConfig{
			BaseURL: DefaultBaseURL,
			Model:   DefaultChatModel,
		},
	}
}

// Load builds the effective configuration. path may be empty, in which case
// only defaults, dotenv files, and environment variables apply. A missing
// file at an explicitly provided path is not an error, matching the CLI
// behavior of optional --config.
func Load(path string) (Config, error) {
	if err := loadDotEnvPrecedence(); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func loadDotEnvPrecedence() error {
	for _, name := range []string{".env", ".env.local"} {
		values, err := godotenv.Read(name)
		if err != nil {
			continue
		}
		for k, v := range values {
			if _, exists := os.LookupEnv(k); !exists {
				if setErr := os.Setenv(k, v); setErr != nil {
					return setErr
				}
			}
		}
	}
	return nil
}

func mergeFile(cfg *Config, path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func mergeEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("MISTRAL_API_KEY")); v != "" {
		cfg.Mistral.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("MISTRAL_BASE_URL")); v != "" {
		cfg.Mistral.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAFTDESK_MODEL")); v != "" {
		cfg.Mistral.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAFTDESK_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAFTDESK_ROOTS")); v != "" {
		cfg.Search.Roots = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("DRAFTDESK_FILE_TYPES")); v != "" {
		cfg.Search.FileTypes = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("DRAFTDESK_EML_DIR")); v != "" {
		cfg.Mail.EmlDir = v
	}
	if v := strings.TrimSpace(os.Getenv("DRAFTDESK_VERBOSE")); v != "" {
		cfg.Verbose = v == "1" || strings.EqualFold(v, "true")
	}
}

func splitList(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
