package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SimonWaldherr/toydb/internal/config"
	"github.com/SimonWaldherr/toydb/internal/shell"
)

var flagConfig = flag.String("config", "", "YAML config file (default $HOME/"+config.FileName+" when present)")
var flagFormat = flag.String("format", "", "Output format: debug, sql, table, json, yaml")
var flagExport = flag.String("export", "", "Also export INSERT rows as csv, json, yaml or xml")
var flagHistory = flag.String("history", "", "History file for interactive sessions")
var flagPrompt = flag.String("prompt", "", "Prompt shown in interactive sessions")
var flagLogLevel = flag.String("log-level", "", "Diagnostic log level (debug, info, warn, error)")
var flagPrettyJSON = flag.Bool("pretty-json", false, "Indent JSON exports")
var flagCSVNoHeader = flag.Bool("csv-no-header", false, "Omit the header row from CSV exports")
var flagCSVDelimiter = flag.String("csv-delimiter", "", "Field delimiter for CSV exports (single character or \\t)")
var flagCmd = flag.String("c", "", "Process the given line and exit")

func main() {
	flag.Parse()
	exitIfErr(run())
}

func exitIfErr(err error) {
	if err == nil || errors.Is(err, shell.ErrExit) {
		return
	}
	fmt.Fprintln(os.Stderr, "toydb:", err)
	os.Exit(1)
}

func loadConfig() (config.Config, error) {
	path, required := *flagConfig, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *flagFormat
		case "export":
			cfg.Export = *flagExport
		case "history":
			cfg.HistoryFile = *flagHistory
		case "prompt":
			cfg.Prompt = *flagPrompt
		case "log-level":
			cfg.LogLevel = *flagLogLevel
		case "pretty-json":
			cfg.PrettyJSON = *flagPrettyJSON
		case "csv-no-header":
			cfg.CSVNoHeader = *flagCSVNoHeader
		case "csv-delimiter":
			cfg.CSVDelimiter = *flagCSVDelimiter
		}
	})
	cfg.Normalize()
	return cfg, cfg.Validate()
}

func newLogger(level string) (*logrus.Entry, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(lvl)
	return l.WithField("session", uuid.NewString()), nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	expOpts, err := cfg.ExportOptions()
	if err != nil {
		return err
	}

	// Suppress prompts and line editing when stdin is not a terminal.
	interactive := false
	if fi, err := os.Stdin.Stat(); err == nil {
		interactive = (fi.Mode() & os.ModeCharDevice) != 0
	}

	var in shell.LineReader
	switch {
	case *flagCmd != "":
		in = shell.NewScanReader(strings.NewReader(""))
	case interactive:
		in, err = shell.NewTerminalReader(cfg.Prompt, cfg.HistoryFile)
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
	default:
		in = shell.NewScanReader(os.Stdin)
	}
	defer in.Close()

	sh, err := shell.New(in, os.Stdout, shell.Options{
		Format:        cfg.Format,
		Export:        cfg.Export,
		ExportOptions: expOpts,
		Log:           log,
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"format": cfg.Format, "interactive": interactive}).Info("shell started")

	if *flagCmd != "" {
		return sh.Execute(*flagCmd)
	}
	return sh.Run(context.Background())
}
