// Package config loads shell settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/SimonWaldherr/toydb/internal/exporter"
	"github.com/SimonWaldherr/toydb/internal/printer"
)

// DefaultPrompt is shown before every line in interactive mode.
const DefaultPrompt = "toy_db >> "

// FileName is looked up in the home directory when no -config is given.
const FileName = ".toydb.yml"

// Config holds shell settings. Flags override values read from the file.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Format      string `yaml:"format"`
	Export      string `yaml:"export"`
	LogLevel    string `yaml:"log_level"`

	// Export settings.
	PrettyJSON   bool   `yaml:"pretty_json"`
	CSVNoHeader  bool   `yaml:"csv_no_header"`
	CSVDelimiter string `yaml:"csv_delimiter"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Prompt:   DefaultPrompt,
		Format:   printer.Formats[0],
		LogLevel: "warn",
	}
}

// DefaultPath returns $HOME/.toydb.yml, or "" when the home directory is
// unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads path over the defaults. A missing file is only an error when
// required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, cfg.Validate()
}

// Normalize lowercases and trims the format names.
func (c *Config) Normalize() {
	c.Format = normalizeName(c.Format)
	c.Export = normalizeName(c.Export)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks the format names and the CSV delimiter.
func (c Config) Validate() error {
	if f := normalizeName(c.Format); f != "" && !printer.ValidFormat(f) {
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if e := normalizeName(c.Export); e != "" && e != "off" && !exporter.Valid(e) {
		return fmt.Errorf("config: unknown export format %q", c.Export)
	}
	if _, err := parseDelimiter(c.CSVDelimiter); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ExportOptions returns the exporter settings. It fails on an invalid
// CSV delimiter.
func (c Config) ExportOptions() (exporter.Options, error) {
	d, err := parseDelimiter(c.CSVDelimiter)
	if err != nil {
		return exporter.Options{}, err
	}
	return exporter.Options{
		PrettyJSON:   c.PrettyJSON,
		CSVNoHeader:  c.CSVNoHeader,
		CSVDelimiter: d,
	}, nil
}

// parseDelimiter accepts a single character or the escape `\t`. The empty
// string selects the default comma and yields 0.
func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if n != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid csv delimiter %q", s)
	}
	return r, nil
}
