// Package command classifies shell input into meta-commands and database
// commands.
//
// A line whose first byte is '.' is a meta-command and is interpreted by the
// shell itself. Every other line is a database command and is handed to the
// SQL parser unchanged.
package command

import (
	"fmt"
	"strings"
)

// MetaKind enumerates the meta-commands understood by the shell.
type MetaKind int

const (
	// MetaUnknown is any dot-prefixed line the shell does not recognise.
	MetaUnknown MetaKind = iota
	// MetaExit ends the shell (".exit").
	MetaExit
	// MetaQuit is an alias for MetaExit (".quit").
	MetaQuit
	// MetaHelp lists the available meta-commands (".help").
	MetaHelp
	// MetaFormat switches the statement output format (".format NAME").
	MetaFormat
	// MetaExport toggles exporting extracted INSERT rows (".export FORMAT|off").
	MetaExport
)

var metaNames = map[string]MetaKind{
	".exit":   MetaExit,
	".quit":   MetaQuit,
	".help":   MetaHelp,
	".format": MetaFormat,
	".export": MetaExport,
}

// MetaCommand is a parsed meta-command. Text always holds the line as typed;
// Arg holds the optional argument of .format and .export.
type MetaCommand struct {
	Kind MetaKind
	Text string
	Arg  string
}

// NewMetaCommand interprets text as a meta-command. Matching is exact and
// case-sensitive: ".EXIT" is an unknown command.
func NewMetaCommand(text string) MetaCommand {
	if kind, ok := metaNames[text]; ok && !takesArg(kind) {
		return MetaCommand{Kind: kind, Text: text}
	}
	fields := strings.Fields(text)
	if len(fields) == 2 {
		if kind, ok := metaNames[fields[0]]; ok && takesArg(kind) {
			return MetaCommand{Kind: kind, Text: text, Arg: fields[1]}
		}
	}
	return MetaCommand{Kind: MetaUnknown, Text: text}
}

func takesArg(k MetaKind) bool {
	return k == MetaFormat || k == MetaExport
}

// Exits reports whether the command terminates the shell.
func (m MetaCommand) Exits() bool {
	return m.Kind == MetaExit || m.Kind == MetaQuit
}

func (m MetaCommand) String() string {
	switch m.Kind {
	case MetaExit:
		return "Exit"
	case MetaQuit:
		return "Quit"
	case MetaHelp:
		return "Help"
	case MetaFormat:
		return fmt.Sprintf("Format(%s)", m.Arg)
	case MetaExport:
		return fmt.Sprintf("Export(%s)", m.Arg)
	default:
		return fmt.Sprintf("Unknown(%s)", m.Text)
	}
}

// Type is the result of classifying one input line: either a meta-command or
// a database command carrying the whole line.
type Type struct {
	Meta *MetaCommand
	DB   string
}

// IsMeta reports whether the line was a meta-command.
func (t Type) IsMeta() bool { return t.Meta != nil }

func (t Type) String() string {
	if t.Meta != nil {
		return "MetaCommand(" + t.Meta.String() + ")"
	}
	return "DbCommand(" + t.DB + ")"
}

// Classify decides whether line is a meta-command or a database command.
func Classify(line string) Type {
	if strings.HasPrefix(line, ".") {
		m := NewMetaCommand(line)
		return Type{Meta: &m}
	}
	return Type{DB: line}
}

// Usage is printed by the .help meta-command.
const Usage = `.meta:
  .help                 show this help
  .exit                 leave the shell
  .quit                 alias for .exit
  .format NAME          output format: debug, sql, table, json, yaml
  .export FORMAT|off    also export INSERT rows as csv, json, yaml or xml`
