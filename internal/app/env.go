package app

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadEnvFiles loads dotenv files of KEY=VALUE pairs into the process
// environment before ApplyEnv reads it. Later files override earlier ones.
// Missing files are skipped; comment and malformed lines are ignored.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := loadEnvFile(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}
		_ = os.Setenv(key, val)
	}
	return scanner.Err()
}

// ApplyEnv overlays MCP_SAFE_FETCH_* environment variables into cfg for
// fields that are still unset. Malformed values are ignored so a bad
// environment never blocks a run.
func ApplyEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("MCP_SAFE_FETCH_UA")
	}
	if cfg.AuditPath == "" {
		cfg.AuditPath = os.Getenv("MCP_SAFE_FETCH_AUDIT")
	}
	if cfg.Timeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("MCP_SAFE_FETCH_TIMEOUT")); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if cfg.Sanitize.MaxBase64DecodeLength == 0 {
		if n, err := strconv.Atoi(os.Getenv("MCP_SAFE_FETCH_MAX_BASE64")); err == nil && n > 0 {
			cfg.Sanitize.MaxBase64DecodeLength = n
		}
	}
	if !cfg.Sanitize.AllowDataURIs {
		switch strings.ToLower(os.Getenv("MCP_SAFE_FETCH_ALLOW_DATA_URIS")) {
		case "1", "true", "yes":
			cfg.Sanitize.AllowDataURIs = true
		}
	}
}
