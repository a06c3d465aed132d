package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/timstarkk/mcp-safe-fetch/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		outputPath    string
		forceText     bool
		forceHTML     bool
		execMode      bool
		configPath    string
		verbose       bool
		auditPath     string
		auditMaxBytes int64
		timeout       time.Duration
		userAgent     string
		maxFetchBytes int64
		maxFileBytes  int64
		allowDataURIs bool
		maxBase64     int
		stripPatterns string
	)

	flag.StringVar(&outputPath, "o", "", "Write sanitized content to a file instead of stdout")
	flag.StringVar(&outputPath, "output", "", "Write sanitized content to a file instead of stdout (same as -o)")
	flag.BoolVar(&forceText, "text", false, "Treat every input as plain text, skipping HTML stripping")
	flag.BoolVar(&forceHTML, "html", false, "Treat every input as HTML regardless of detection")
	flag.BoolVar(&execMode, "exec", false, "Run the positional arguments as a command and sanitize its output")
	flag.StringVar(&configPath, "config", "", "Path to a YAML, JSON, or TOML config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.StringVar(&auditPath, "audit", "", "Append one JSON record per call to this file")
	flag.Int64Var(&auditMaxBytes, "audit.maxBytes", 0, "Rotate the audit file when it exceeds this size (0 uses the default)")
	flag.DurationVar(&timeout, "timeout", 0, "Per-request timeout for URL inputs (e.g. 10s)")
	flag.StringVar(&userAgent, "ua", "", "Custom User-Agent for URL inputs")
	flag.Int64Var(&maxFetchBytes, "max.fetchBytes", 0, "Maximum response body size for URL inputs (0 uses the default)")
	flag.Int64Var(&maxFileBytes, "max.fileBytes", 0, "Maximum size for file and exec inputs (0 uses the default)")
	flag.BoolVar(&allowDataURIs, "allow-data-uris", false, "Keep data: URIs instead of replacing them")
	flag.IntVar(&maxBase64, "max.base64", 0, "Skip inspecting base64 runs whose decoded size would exceed this (0 uses the default)")
	flag.StringVar(&stripPatterns, "strip", "", "Comma-separated literal strings to remove from every input")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		ForceHTML:     forceHTML,
		ForceText:     forceText,
		OutputPath:    outputPath,
		UserAgent:     userAgent,
		Timeout:       timeout,
		MaxFetchBytes: maxFetchBytes,
		MaxFileBytes:  maxFileBytes,
		AuditPath:     auditPath,
		AuditMaxBytes: auditMaxBytes,
		Verbose:       verbose,
	}
	cfg.Sanitize.AllowDataURIs = allowDataURIs
	cfg.Sanitize.MaxBase64DecodeLength = maxBase64

	if s := strings.TrimSpace(stripPatterns); s != "" {
		parts := strings.Split(s, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if v := strings.TrimSpace(p); v != "" {
				list = append(list, v)
			}
		}
		cfg.Sanitize.CustomPatterns = list
	}

	if execMode {
		cfg.ExecArgs = flag.Args()
		if len(cfg.ExecArgs) == 0 {
			log.Error().Msg("-exec needs a command to run")
			os.Exit(2)
		}
	} else {
		cfg.Inputs = flag.Args()
	}

	// Precedence is flags, then environment, then config file. A config file
	// that fails to parse is reported and skipped so the run still happens
	// with built-in defaults.
	if err := app.LoadEnvFiles(".env"); err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable .env file")
	}
	app.ApplyEnv(&cfg)
	if configPath != "" {
		if fc, err := app.LoadConfigFile(configPath); err != nil {
			log.Warn().Str("path", configPath).Err(err).Msg("ignoring unreadable config file")
		} else {
			app.ApplyFileConfig(&cfg, fc)
		}
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	return a.Run(ctx)
}
