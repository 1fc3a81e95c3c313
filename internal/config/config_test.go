package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every variable the loader reads so ambient values cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MISTRAL_API_KEY", "MISTRAL_BASE_URL",
		"DRAFTDESK_MODEL", "DRAFTDESK_LISTEN", "DRAFTDESK_ROOTS",
		"DRAFTDESK_FILE_TYPES", "DRAFTDESK_EML_DIR", "DRAFTDESK_VERBOSE",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Listen != DefaultListen {
		t.Fatalf("unexpected listen %q", cfg.Server.Listen)
	}
	if len(cfg.Search.Roots) == 0 {
		t.Fatal("default roots must not be empty")
	}
	found := false
	for _, ft := range cfg.Search.FileTypes {
		if ft == ".eml" {
			found = true
		}
	}
	if !found {
		t.Fatalf("default file types missing .eml: %v", cfg.Search.FileTypes)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "draftdesk.toml")
	content := `
verbose = true

[server]
listen = "127.0.0.1:9000"

[search]
roots = ["` + strings.ReplaceAll(dir, `\`, `\\`) + `"]
file_types = [".txt"]

[mistral]
model = "mistral-large-latest"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Listen != "127.0.0.1:9000" {
		t.Fatalf("file listen not applied: %q", cfg.Server.Listen)
	}
	if len(cfg.Search.Roots) != 1 || cfg.Search.Roots[0] != dir {
		t.Fatalf("file roots not applied: %v", cfg.Search.Roots)
	}
	if cfg.Mistral.Model != "mistral-large-latest" {
		t.Fatalf("file model not applied: %q", cfg.Mistral.Model)
	}
	if cfg.Mistral.BaseURL != DefaultBaseURL {
		t.Fatalf("untouched default lost: %q", cfg.Mistral.BaseURL)
	}
	if !cfg.Verbose {
		t.Fatal("verbose flag from file lost")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "draftdesk.toml")
	if err := os.WriteFile(path, []byte("[mistral]\nmodel = \"from-file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DRAFTDESK_MODEL", "from-env")
	t.Setenv("MISTRAL_API_KEY", "sk-test")
	t.Setenv("DRAFTDESK_ROOTS", dir+" , ")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mistral.Model != "from-env" {
		t.Fatalf("env must beat file, got %q", cfg.Mistral.Model)
	}
	if cfg.Mistral.APIKey != "sk-test" {
		t.Fatalf("api key not picked up: %q", cfg.Mistral.APIKey)
	}
	if len(cfg.Search.Roots) != 1 || cfg.Search.Roots[0] != dir {
		t.Fatalf("env roots list not parsed: %v", cfg.Search.Roots)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Listen != DefaultListen {
		t.Fatalf("expected defaults, got %q", cfg.Server.Listen)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "draftdesk.toml")
	want := Default()
	want.Server.Listen = "127.0.0.1:9311"
	want.Mail.EmlDir = "/var/mail/archive"

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Server.Listen != want.Server.Listen {
		t.Fatalf("listen did not survive: %q", got.Server.Listen)
	}
	if got.Mail.EmlDir != want.Mail.EmlDir {
		t.Fatalf("eml_dir did not survive: %q", got.Mail.EmlDir)
	}
}

func TestValidate(t *testing.T) {
	base := Default()

	cases := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"valid", func(*Config) {}, true},
		{"empty listen", func(c *Config) { c.Server.Listen = "" }, false},
		{"listen without port", func(c *Config) { c.Server.Listen = "localhost" }, false},
		{"no roots", func(c *Config) { c.Search.Roots = nil }, false},
		{"file type without dot", func(c *Config) { c.Search.FileTypes = []string{"txt"} }, false},
		{"missing base url", func(c *Config) { c.Mistral.BaseURL = " " }, false},
		{"missing model", func(c *Config) { c.Mistral.Model = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			cfg.Search.Roots = append([]string(nil), base.Search.Roots...)
			cfg.Search.FileTypes = append([]string(nil), base.Search.FileTypes...)
			tc.mutate(&cfg)
			err := Validate(cfg)
			if tc.wantOK && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.wantOK && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
