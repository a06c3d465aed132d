package app

import (
	"errors"
	"strings"
	"time"

	"github.com/timstarkk/mcp-safe-fetch/internal/pipeline"
)

// Config carries everything the application layer needs for one run. The
// sanitization policy itself lives in Sanitize and is handed to the pipeline
// untouched.
type Config struct {
	// Inputs are URLs or local file paths. Empty means read stdin.
	Inputs []string
	// ExecArgs, when set, runs a command and sanitizes its captured output
	// instead of reading Inputs.
	ExecArgs []string

	// ForceHTML and ForceText override the classifier. At most one may be
	// set.
	ForceHTML bool
	ForceText bool

	// OutputPath writes the sanitized content to a file instead of stdout.
	OutputPath string

	UserAgent     string
	Timeout       time.Duration
	MaxFetchBytes int64
	MaxFileBytes  int64

	// AuditPath enables the append-only call log when non-empty.
	AuditPath     string
	AuditMaxBytes int64

	Verbose bool

	Sanitize pipeline.Config
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if cfg.ForceHTML && cfg.ForceText {
		return errors.New("config: -html and -text are mutually exclusive")
	}
	if len(cfg.ExecArgs) > 0 && len(cfg.Inputs) > 0 {
		return errors.New("config: -exec takes a command, not input paths")
	}
	if cfg.Sanitize.MaxBase64DecodeLength < 0 {
		return errors.New("config: negative decode budget is not allowed")
	}
	if cfg.MaxFetchBytes < 0 || cfg.MaxFileBytes < 0 {
		return errors.New("config: negative size limits are not allowed")
	}
	for _, p := range cfg.Sanitize.CustomPatterns {
		if strings.TrimSpace(p) == "" {
			return errors.New("config: blank custom pattern")
		}
	}
	return nil
}
