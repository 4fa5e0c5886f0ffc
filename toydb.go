// Package toydb is a SQL shell prototype built around the MySQL grammar of
// github.com/xwb1989/sqlparser.
//
// Nothing is executed or stored. The shell classifies each line as a
// meta-command or a database command, parses database commands and prints
// the resulting statements. INSERT statements are additionally flattened to
// plain string columns and values.
//
// # Basic Usage
//
//	stmts, err := toydb.Parse("INSERT INTO users (id, name) VALUES (1, 'Alice')")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ins, _ := toydb.ExtractInsert(stmts[0])
//	fmt.Println(ins.Table, ins.Columns, ins.Values)
//	// users [id name] [[1 Alice]]
//
// # Shell
//
// Run a shell over any line source:
//
//	sh, _ := toydb.NewShell(toydb.NewScanReader(os.Stdin), os.Stdout, toydb.ShellOptions{Format: "table"})
//	err := sh.Run(context.Background())
package toydb

import (
	"io"

	"github.com/SimonWaldherr/toydb/internal/command"
	"github.com/SimonWaldherr/toydb/internal/parser"
	"github.com/SimonWaldherr/toydb/internal/printer"
	"github.com/SimonWaldherr/toydb/internal/shell"
)

// ============================================================================
// Core Types - Re-exported from internal packages for public API
// ============================================================================

// Statement is a parsed SQL statement.
type Statement = parser.Statement

// Insert is an INSERT statement flattened to strings.
type Insert = parser.Insert

// CommandType is the classification of one input line.
type CommandType = command.Type

// MetaCommand is a dot-prefixed shell command.
type MetaCommand = command.MetaCommand

// Description is the printable form of a statement.
type Description = printer.Description

// Shell is the read-classify-print loop.
type Shell = shell.Shell

// ShellOptions configures a Shell.
type ShellOptions = shell.Options

// LineReader supplies input lines to a Shell.
type LineReader = shell.LineReader

var (
	// ErrNotInsert is returned by ExtractInsert for non-INSERT statements.
	ErrNotInsert = parser.ErrNotInsert
	// ErrExit is returned by a Shell after .exit.
	ErrExit = shell.ErrExit
)

// ============================================================================
// Functions
// ============================================================================

// Parse parses all ';'-separated statements in sql.
func Parse(sql string) ([]Statement, error) { return parser.Parse(sql) }

// ExtractInsert flattens an INSERT statement.
func ExtractInsert(stmt Statement) (*Insert, error) { return parser.NewInsert(stmt) }

// Classify decides whether line is a meta-command or a database command.
func Classify(line string) CommandType { return command.Classify(line) }

// Describe dispatches on the statement variant.
func Describe(stmt Statement) Description { return printer.Describe(stmt) }

// NewScanReader returns a LineReader over r without line editing.
func NewScanReader(r io.Reader) LineReader { return shell.NewScanReader(r) }

// NewShell returns a Shell reading from in and writing to out.
func NewShell(in LineReader, out io.Writer, opts ShellOptions) (*Shell, error) {
	return shell.New(in, out, opts)
}
