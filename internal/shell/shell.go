// Package shell implements the read-classify-print loop of toydb.
//
// Each input line is either a meta-command, interpreted by the shell, or a
// database command, parsed as SQL and printed statement by statement.
// Nothing is executed.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/SimonWaldherr/toydb/internal/command"
	"github.com/SimonWaldherr/toydb/internal/exporter"
	"github.com/SimonWaldherr/toydb/internal/parser"
	"github.com/SimonWaldherr/toydb/internal/printer"
)

// ErrExit is returned by Run and Execute after an .exit or .quit.
var ErrExit = errors.New("exit requested")

// Options configures a Shell.
type Options struct {
	Format string
	// Export names the format extracted INSERT rows are exported in after
	// the statement is printed; empty or "off" disables it.
	Export string
	// ExportOptions is passed to the exporter unchanged.
	ExportOptions exporter.Options
	Log           logrus.FieldLogger
}

// Shell reads lines from a LineReader and writes results to an io.Writer.
type Shell struct {
	in      LineReader
	out     io.Writer
	printer *printer.Printer
	export  string
	expOpts exporter.Options
	log     logrus.FieldLogger
}

// New returns a Shell. It fails on unknown format names.
func New(in LineReader, out io.Writer, opts Options) (*Shell, error) {
	p, err := printer.New(out, opts.Format)
	if err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	s := &Shell{in: in, out: out, printer: p, expOpts: opts.ExportOptions, log: log}
	if err := s.setExport(opts.Export); err != nil {
		return nil, err
	}
	return s, nil
}

// Run processes lines until the input ends, the user interrupts, an exit
// meta-command is issued, or ctx is cancelled. The context is checked
// between lines; a blocked read is not interrupted. End of input, Ctrl-C
// and read errors return nil; a read error is reported on the output and
// logged. .exit returns ErrExit.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.in.Readline()
		switch {
		case err == nil:
		case errors.Is(err, ErrInterrupted):
			fmt.Fprintln(s.out, "CTRL-C")
			return nil
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out, "CTRL-D")
			return nil
		default:
			s.log.WithError(err).Warn("read line")
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return nil
		}
		if err := s.Execute(line); err != nil {
			return err
		}
	}
}

// Execute handles a single input line.
func (s *Shell) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	ct := command.Classify(line)
	s.log.WithField("command", ct.String()).Debug("classified")
	if ct.IsMeta() {
		return s.handleMeta(*ct.Meta)
	}
	return s.process(ct.DB)
}

func (s *Shell) handleMeta(m command.MetaCommand) error {
	switch m.Kind {
	case command.MetaExit, command.MetaQuit:
		return ErrExit
	case command.MetaHelp:
		fmt.Fprintln(s.out, command.Usage)
	case command.MetaFormat:
		if err := s.printer.SetFormat(m.Arg); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	case command.MetaExport:
		if err := s.setExport(m.Arg); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	default:
		fmt.Fprintf(s.out, "Unrecognized meta command %s\n", m.Text)
	}
	return nil
}

func (s *Shell) setExport(name string) error {
	name = strings.ToLower(name)
	if name == "" || name == "off" {
		s.export = ""
		return nil
	}
	if !exporter.Valid(name) {
		return fmt.Errorf("unknown export format %q (want one of %s or off)", name, strings.Join(exporter.Formats, ", "))
	}
	s.export = name
	return nil
}

func (s *Shell) process(line string) error {
	stmts, err := parser.Parse(line)
	if err != nil {
		s.log.WithError(err).Debug("parse failed")
		fmt.Fprintf(s.out, "Can not parse command %s\n", line)
		return nil
	}
	for _, stmt := range stmts {
		d := printer.Describe(stmt)
		s.log.WithFields(logrus.Fields{"kind": d.Kind, "table": d.Table}).Debug("statement parsed")
		if err := s.printer.Print(d); err != nil {
			return fmt.Errorf("print statement: %w", err)
		}
		if s.export == "" || d.Insert == nil {
			continue
		}
		if err := exporter.Export(s.out, s.export, d.Insert, s.expOpts); err != nil {
			return fmt.Errorf("export %s: %w", s.export, err)
		}
	}
	return nil
}
