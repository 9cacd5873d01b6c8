package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_FullConfig(t *testing.T) {
	yaml := `unit: bytes
max: 4096
oversize: strict
header: false
footer: always

clipboard:
  backend: command
  command: [xclip, -selection, clipboard]

messages:
  header: "BEGIN {{.Source}}\n"
  footer: "END {{.Source}}\n"
  footer_unnamed: "END\n"

journal: /tmp/clipfrag.journal

log:
  level: debug
  file: /tmp/clipfrag.log

s3:
  region: us-east-1
  endpoint: https://example.com
  path_style: true
`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assertEqual(t, "unit", cfg.Unit, "bytes")
	if cfg.Max != 4096 {
		t.Errorf("expected max=4096, got %d", cfg.Max)
	}
	assertEqual(t, "oversize", cfg.Oversize, "strict")
	if cfg.HeaderEnabled() {
		t.Error("expected header=false")
	}
	assertEqual(t, "footer", cfg.Footer, "always")

	assertEqual(t, "clipboard.backend", cfg.Clipboard.Backend, "command")
	assertEqual(t, "clipboard.command", strings.Join(cfg.Clipboard.Command, " "), "xclip -selection clipboard")

	assertEqual(t, "messages.header", cfg.Messages.Header, "BEGIN {{.Source}}\n")
	assertEqual(t, "messages.footer", cfg.Messages.Footer, "END {{.Source}}\n")
	assertEqual(t, "messages.footer_unnamed", cfg.Messages.FooterUnnamed, "END\n")

	assertEqual(t, "journal", cfg.Journal, "/tmp/clipfrag.journal")
	assertEqual(t, "log.level", cfg.Log.Level, "debug")
	assertEqual(t, "log.file", cfg.Log.File, "/tmp/clipfrag.log")

	assertEqual(t, "s3.region", cfg.S3.Region, "us-east-1")
	assertEqual(t, "s3.endpoint", cfg.S3.Endpoint, "https://example.com")
	if !cfg.S3.PathStyle {
		t.Error("expected s3.path_style=true")
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	for name, content := range map[string]string{
		"empty":      "",
		"whitespace": "   \n\n  \n",
		"comments":   "# nothing set\n# here\n",
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeTemp(t, content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.Unit != "" || cfg.Max != 0 || cfg.Clipboard.Backend != "" {
				t.Errorf("expected zero config, got %+v", cfg)
			}
			if !cfg.HeaderEnabled() {
				t.Error("header should default to enabled")
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/clipfrag.yaml")
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "unit: [unclosed"))
	if err == nil || !strings.Contains(err.Error(), "invalid YAML") {
		t.Errorf("expected invalid YAML error, got %v", err)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("CLIPFRAG_TEST_MAX", "2048")
	cfg, err := Load(writeTemp(t, "max: ${CLIPFRAG_TEST_MAX}\nunit: ${CLIPFRAG_TEST_UNIT:-bytes}\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Max != 2048 {
		t.Errorf("expected max=2048, got %d", cfg.Max)
	}
	assertEqual(t, "unit", cfg.Unit, "bytes")
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	_, err := Load(writeTemp(t, "unit: chars\nmax_units: 10\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "max_units") {
		t.Errorf("error should name the unknown key: %v", err)
	}
}

func TestLoad_UnknownNestedKeyRejected(t *testing.T) {
	_, err := Load(writeTemp(t, "clipboard:\n  backend: auto\n  program: xclip\n"))
	if err == nil {
		t.Fatal("expected error for unknown nested key")
	}
}

func TestDiscover(t *testing.T) {
	t.Setenv(EnvVar, "/etc/clipfrag.yaml")
	if got := Discover("./local.yaml"); got != "./local.yaml" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := Discover(""); got != "/etc/clipfrag.yaml" {
		t.Errorf("env fallback, got %q", got)
	}
	t.Setenv(EnvVar, "")
	if got := Discover(""); got != "" {
		t.Errorf("no config expected, got %q", got)
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "clipfrag.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func assertEqual(t *testing.T, field, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}
