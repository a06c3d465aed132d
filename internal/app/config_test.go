package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := writeConfig(t, "cfg.yaml", `
fetch:
  ua: test-agent
sanitize:
  allowDataUris: true
  maxBase64DecodeLength: 512
  customPatterns:
    - SECRET-TAG
audit:
  path: audit.jsonl
`)
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.Fetch.UserAgent != "test-agent" {
		t.Fatalf("got %+v", fc.Fetch)
	}
	if !fc.Sanitize.AllowDataURIs || fc.Sanitize.MaxBase64DecodeLength != 512 {
		t.Fatalf("got %+v", fc.Sanitize)
	}
	if len(fc.Sanitize.CustomPatterns) != 1 || fc.Sanitize.CustomPatterns[0] != "SECRET-TAG" {
		t.Fatalf("got %+v", fc.Sanitize.CustomPatterns)
	}
	if fc.Audit.Path != "audit.jsonl" {
		t.Fatalf("got %+v", fc.Audit)
	}
}

func TestLoadConfigFile_TOML(t *testing.T) {
	path := writeConfig(t, "cfg.toml", `
[sanitize]
maxBase64DecodeLength = 256

[audit]
path = "calls.jsonl"
maxBytes = 1024
`)
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.Sanitize.MaxBase64DecodeLength != 256 {
		t.Fatalf("got %+v", fc.Sanitize)
	}
	if fc.Audit.Path != "calls.jsonl" || fc.Audit.MaxBytes != 1024 {
		t.Fatalf("got %+v", fc.Audit)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := writeConfig(t, "cfg.json", `{"sanitize":{"maxBase64DecodeLength":128}}`)
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.Sanitize.MaxBase64DecodeLength != 128 {
		t.Fatalf("got %+v", fc.Sanitize)
	}
}

func TestLoadConfigFile_Malformed(t *testing.T) {
	path := writeConfig(t, "cfg.yaml", "sanitize: [not: valid")
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatalf("expected parse error for caller to handle")
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := Config{UserAgent: "from-flag", Timeout: 2 * time.Second}
	var fc FileConfig
	fc.Fetch.UserAgent = "from-file"
	fc.Fetch.Timeout = 9 * time.Second
	fc.Audit.Path = "from-file.jsonl"

	ApplyFileConfig(&cfg, fc)
	if cfg.UserAgent != "from-flag" {
		t.Fatalf("flag value must win, got %q", cfg.UserAgent)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("flag timeout must win, got %v", cfg.Timeout)
	}
	if cfg.AuditPath != "from-file.jsonl" {
		t.Fatalf("unset field must take file value, got %q", cfg.AuditPath)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MCP_SAFE_FETCH_UA", "env-agent")
	t.Setenv("MCP_SAFE_FETCH_MAX_BASE64", "777")
	t.Setenv("MCP_SAFE_FETCH_ALLOW_DATA_URIS", "true")
	t.Setenv("MCP_SAFE_FETCH_TIMEOUT", "bogus")

	var cfg Config
	ApplyEnv(&cfg)
	if cfg.UserAgent != "env-agent" {
		t.Fatalf("got %q", cfg.UserAgent)
	}
	if cfg.Sanitize.MaxBase64DecodeLength != 777 {
		t.Fatalf("got %d", cfg.Sanitize.MaxBase64DecodeLength)
	}
	if !cfg.Sanitize.AllowDataURIs {
		t.Fatalf("expected data URIs allowed")
	}
	if cfg.Timeout != 0 {
		t.Fatalf("malformed duration must be ignored, got %v", cfg.Timeout)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	path := writeConfig(t, "dot.env", `
# comment
MCP_SAFE_FETCH_UA="quoted agent"
MCP_SAFE_FETCH_AUDIT=from-env.jsonl
malformed line without equals
`)
	t.Setenv("MCP_SAFE_FETCH_UA", "")
	t.Setenv("MCP_SAFE_FETCH_AUDIT", "")

	if err := LoadEnvFiles(path, "does-not-exist.env"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var cfg Config
	ApplyEnv(&cfg)
	if cfg.UserAgent != "quoted agent" {
		t.Fatalf("got %q", cfg.UserAgent)
	}
	if cfg.AuditPath != "from-env.jsonl" {
		t.Fatalf("got %q", cfg.AuditPath)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(Config{}); err != nil {
		t.Fatalf("zero config must validate: %v", err)
	}
	if err := ValidateConfig(Config{ForceHTML: true, ForceText: true}); err == nil {
		t.Fatalf("expected mutual-exclusion error")
	}
	if err := ValidateConfig(Config{ExecArgs: []string{"ls"}, Inputs: []string{"x"}}); err == nil {
		t.Fatalf("expected exec/inputs conflict error")
	}
}
