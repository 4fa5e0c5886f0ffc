package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SimonWaldherr/toydb/internal/config"
)

func TestNewLogger(t *testing.T) {
	log, err := newLogger("debug")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if log.Logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %v", log.Logger.GetLevel())
	}
	id, ok := log.Data["session"].(string)
	if !ok {
		t.Fatalf("session field missing: %v", log.Data)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("session is not a uuid: %q", id)
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	if _, err := newLogger("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

// setFlag sets a command-line flag for the duration of the test.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	f := flag.CommandLine.Lookup(name)
	if f == nil {
		t.Fatalf("no flag %q", name)
	}
	old := f.Value.String()
	if err := flag.CommandLine.Set(name, value); err != nil {
		t.Fatalf("set -%s: %v", name, err)
	}
	t.Cleanup(func() { _ = flag.CommandLine.Set(name, old) })
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	body := "prompt: 'db> '\nformat: table\nexport: csv\ncsv_delimiter: ';'\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	setFlag(t, "config", path)
	setFlag(t, "format", "JSON")
	setFlag(t, "csv-no-header", "true")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Format != "json" {
		t.Fatalf("flag did not override format: %q", cfg.Format)
	}
	if cfg.Prompt != "db> " || cfg.Export != "csv" || cfg.CSVDelimiter != ";" {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if !cfg.CSVNoHeader {
		t.Fatalf("flag did not set csv_no_header: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	setFlag(t, "config", filepath.Join(t.TempDir(), "missing.yml"))
	if _, err := loadConfig(); err == nil {
		t.Fatalf("expected error for missing required config")
	}
}
