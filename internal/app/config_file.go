package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to flags.
type FileConfig struct {
	Output string `yaml:"output" json:"output" toml:"output"`

	Fetch struct {
		UserAgent string        `yaml:"ua" json:"ua" toml:"ua"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
		MaxBytes  int64         `yaml:"maxBytes" json:"maxBytes" toml:"maxBytes"`
	} `yaml:"fetch" json:"fetch" toml:"fetch"`

	File struct {
		MaxBytes int64 `yaml:"maxBytes" json:"maxBytes" toml:"maxBytes"`
	} `yaml:"file" json:"file" toml:"file"`

	Audit struct {
		Path     string `yaml:"path" json:"path" toml:"path"`
		MaxBytes int64  `yaml:"maxBytes" json:"maxBytes" toml:"maxBytes"`
	} `yaml:"audit" json:"audit" toml:"audit"`

	Sanitize struct {
		AllowDataURIs         bool     `yaml:"allowDataUris" json:"allowDataUris" toml:"allowDataUris"`
		MaxBase64DecodeLength int      `yaml:"maxBase64DecodeLength" json:"maxBase64DecodeLength" toml:"maxBase64DecodeLength"`
		CustomPatterns        []string `yaml:"customPatterns" json:"customPatterns" toml:"customPatterns"`
	} `yaml:"sanitize" json:"sanitize" toml:"sanitize"`

	Verbose bool `yaml:"verbose" json:"verbose" toml:"verbose"`
}

// LoadConfigFile reads YAML, JSON, or TOML into FileConfig, selected by
// extension. Unknown extensions try YAML first, then JSON.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields that
// are still unset. Flags have already been parsed, so explicit flags win
// over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.Timeout == 0 && fc.Fetch.Timeout > 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if cfg.MaxFetchBytes == 0 && fc.Fetch.MaxBytes > 0 {
		cfg.MaxFetchBytes = fc.Fetch.MaxBytes
	}
	if cfg.MaxFileBytes == 0 && fc.File.MaxBytes > 0 {
		cfg.MaxFileBytes = fc.File.MaxBytes
	}
	if cfg.AuditPath == "" && fc.Audit.Path != "" {
		cfg.AuditPath = fc.Audit.Path
	}
	if cfg.AuditMaxBytes == 0 && fc.Audit.MaxBytes > 0 {
		cfg.AuditMaxBytes = fc.Audit.MaxBytes
	}
	if !cfg.Sanitize.AllowDataURIs && fc.Sanitize.AllowDataURIs {
		cfg.Sanitize.AllowDataURIs = true
	}
	if cfg.Sanitize.MaxBase64DecodeLength == 0 && fc.Sanitize.MaxBase64DecodeLength > 0 {
		cfg.Sanitize.MaxBase64DecodeLength = fc.Sanitize.MaxBase64DecodeLength
	}
	if len(cfg.Sanitize.CustomPatterns) == 0 && len(fc.Sanitize.CustomPatterns) > 0 {
		cfg.Sanitize.CustomPatterns = append([]string{}, fc.Sanitize.CustomPatterns...)
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
