// Package app wires the collaborators around the sanitization core: input
// resolution, classification, pipeline invocation, reporting, aggregation,
// and audit logging.
package app

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/timstarkk/mcp-safe-fetch/internal/aggregate"
	"github.com/timstarkk/mcp-safe-fetch/internal/auditlog"
	"github.com/timstarkk/mcp-safe-fetch/internal/classify"
	"github.com/timstarkk/mcp-safe-fetch/internal/fetch"
	"github.com/timstarkk/mcp-safe-fetch/internal/pipeline"
	"github.com/timstarkk/mcp-safe-fetch/internal/report"
	"github.com/timstarkk/mcp-safe-fetch/internal/source"
)

// App runs sanitization calls over the configured inputs.
type App struct {
	cfg    Config
	pipe   *pipeline.Pipeline
	client *fetch.Client
	audit  *auditlog.Log

	// Stdout receives sanitized content, Stderr the summaries. Overridable
	// for tests.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// New validates the configuration and assembles the application.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{
		cfg:  cfg,
		pipe: pipeline.New(cfg.Sanitize),
		client: &fetch.Client{
			UserAgent:         cfg.UserAgent,
			MaxAttempts:       3,
			PerRequestTimeout: cfg.Timeout,
			MaxBodyBytes:      cfg.MaxFetchBytes,
		},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
	if cfg.AuditPath != "" {
		a.audit = auditlog.New(cfg.AuditPath, cfg.AuditMaxBytes)
	}
	return a, nil
}

// item is one unit of work: a named string plus the hint the classifier may
// use.
type item struct {
	name    string
	content string
	hint    string
	isHTML  *bool // set when the transport already told us
}

// Run resolves every input, sanitizes each, and emits content, summaries,
// and audit records. Boundary failures on one input are reported and do not
// abort the rest.
func (a *App) Run(ctx context.Context) error {
	items, err := a.resolve(ctx)
	if err != nil {
		return err
	}

	out := a.Stdout
	if a.cfg.OutputPath != "" {
		f, err := os.Create(a.cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	var totals aggregate.Totals
	for i, it := range items {
		res, kind := a.sanitize(it)
		totals.Add(res)

		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, res.Content)
		fmt.Fprint(a.Stderr, report.Summary(it.name, res))

		if a.audit != nil {
			rec := auditlog.Record{
				Source:     it.name,
				Pipeline:   kind,
				InputSize:  res.InputSize,
				OutputSize: res.OutputSize,
				Stats:      res.Stats,
			}
			if err := a.audit.Append(rec); err != nil {
				log.Warn().Err(err).Msg("audit append failed")
			}
		}
	}

	if totals.Calls > 1 {
		fmt.Fprint(a.Stderr, report.TotalsSummary(totals))
	}
	return nil
}

// sanitize picks the pipeline path for one item and runs it.
func (a *App) sanitize(it item) (pipeline.Result, string) {
	html := false
	switch {
	case a.cfg.ForceHTML:
		html = true
	case a.cfg.ForceText:
		html = false
	case it.isHTML != nil:
		html = *it.isHTML
	default:
		html = classify.IsHTML(it.content, it.hint)
	}
	if html {
		return a.pipe.Full(it.content), "full"
	}
	return a.pipe.TextOnly(it.content), "text"
}

func (a *App) resolve(ctx context.Context) ([]item, error) {
	if len(a.cfg.ExecArgs) > 0 {
		name := a.cfg.ExecArgs[0]
		out, err := source.RunCommand(ctx, name, a.cfg.ExecArgs[1:], a.cfg.MaxFileBytes)
		if err != nil {
			return nil, err
		}
		return []item{{name: "exec:" + name, content: out}}, nil
	}

	if len(a.cfg.Inputs) == 0 {
		b, err := io.ReadAll(a.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []item{{name: "stdin", content: string(b)}}, nil
	}

	items := make([]item, 0, len(a.cfg.Inputs))
	for _, in := range a.cfg.Inputs {
		it, err := a.resolveOne(ctx, in)
		if err != nil {
			// One bad input does not abort the run.
			log.Error().Str("input", in).Err(err).Msg("skipping input")
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no usable inputs")
	}
	return items, nil
}

func (a *App) resolveOne(ctx context.Context, in string) (item, error) {
	if isURL(in) {
		body, ct, err := a.client.Get(ctx, in)
		if err != nil {
			return item{}, err
		}
		it := item{name: in, content: string(body), hint: urlPathHint(in)}
		if h, ok := contentTypeSaysHTML(ct); ok {
			it.isHTML = &h
		}
		return it, nil
	}
	content, err := source.ReadFile(in, a.cfg.MaxFileBytes)
	if err != nil {
		return item{}, err
	}
	return item{name: in, content: content, hint: in}, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func urlPathHint(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}

// contentTypeSaysHTML maps a declared Content-Type onto a pipeline choice.
// Types that declare neither way leave the decision to the classifier.
func contentTypeSaysHTML(ct string) (bool, bool) {
	ct = strings.ToLower(strings.TrimSpace(ct))
	switch {
	case strings.HasPrefix(ct, "text/html"),
		strings.HasPrefix(ct, "application/xhtml+xml"),
		strings.HasPrefix(ct, "image/svg+xml"):
		return true, true
	case strings.HasPrefix(ct, "text/plain"):
		return false, true
	}
	return false, false
}
