// Package printer renders parsed statements for the shell.
//
// Describe dispatches on the statement variant and flattens it into a
// Description; a Printer writes descriptions in one of several formats that
// can be switched while the shell runs.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SimonWaldherr/toydb/internal/parser"
)

// Formats lists the accepted output format names. The first one is the
// default.
var Formats = []string{"debug", "sql", "table", "json", "yaml"}

// ValidFormat reports whether name is an output format.
func ValidFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// Description is the printable form of one parsed statement.
type Description struct {
	Kind    string     `json:"kind" yaml:"kind"`
	Table   string     `json:"table,omitempty" yaml:"table,omitempty"`
	SQL     string     `json:"sql" yaml:"sql"`
	Columns []string   `json:"columns,omitempty" yaml:"columns,omitempty"`
	Values  [][]string `json:"values,omitempty" yaml:"values,omitempty"`

	// Insert is set for INSERT and REPLACE statements.
	Insert *parser.Insert `json:"-" yaml:"-"`
}

// Describe flattens stmt.
func Describe(stmt parser.Statement) Description {
	d := Description{
		Kind:  parser.Kind(stmt),
		Table: parser.TableOf(stmt),
		SQL:   parser.String(stmt),
	}
	if ins, err := parser.NewInsert(stmt); err == nil {
		d.Insert = ins
		d.Columns = ins.Columns
		d.Values = ins.Values
	}
	return d
}

// Printer writes descriptions to an io.Writer.
type Printer struct {
	w      io.Writer
	format string
}

// New returns a Printer writing to w in the named format.
func New(w io.Writer, format string) (*Printer, error) {
	p := &Printer{w: w}
	if err := p.SetFormat(format); err != nil {
		return nil, err
	}
	return p, nil
}

// SetFormat switches the output format. An empty name selects the default.
func (p *Printer) SetFormat(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Formats[0]
	}
	if !ValidFormat(name) {
		return fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
	p.format = name
	return nil
}

// Format returns the active format name.
func (p *Printer) Format() string { return p.format }

// Print writes d in the active format.
func (p *Printer) Print(d Description) error {
	switch p.format {
	case "sql":
		_, err := fmt.Fprintf(p.w, "%s;\n", d.SQL)
		return err
	case "table":
		return p.printTable(d)
	case "json":
		return json.NewEncoder(p.w).Encode(d)
	case "yaml":
		if _, err := io.WriteString(p.w, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return p.printDebug(d)
	}
}

func (p *Printer) printDebug(d Description) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s {", titleKind(d.Kind))
	if d.Table != "" {
		fmt.Fprintf(&b, " table_name: %q,", d.Table)
	}
	if d.Insert != nil {
		fmt.Fprintf(&b, " columns: %s,", quoteList(d.Columns))
		rows := make([]string, len(d.Values))
		for i, r := range d.Values {
			rows[i] = quoteList(r)
		}
		fmt.Fprintf(&b, " values: [%s],", strings.Join(rows, ", "))
	}
	fmt.Fprintf(&b, " sql: %q }\n", d.SQL)
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) printTable(d Description) error {
	if d.Insert == nil {
		return writeTable(p.w, []string{"kind", "table", "sql"}, [][]string{{d.Kind, d.Table, d.SQL}})
	}
	if _, err := fmt.Fprintf(p.w, "%s %s\n", d.Kind, d.Table); err != nil {
		return err
	}
	cols := d.Columns
	width := len(cols)
	for _, r := range d.Values {
		if len(r) > width {
			width = len(r)
		}
	}
	if len(cols) < width {
		cols = append(append([]string(nil), cols...), make([]string, width-len(cols))...)
		for i := len(d.Columns); i < width; i++ {
			cols[i] = fmt.Sprintf("column%d", i+1)
		}
	}
	return writeTable(p.w, cols, d.Values)
}

func titleKind(kind string) string {
	if kind == "" {
		return kind
	}
	parts := strings.Fields(kind)
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}

func quoteList(items []string) string {
	q := make([]string, len(items))
	for i, s := range items {
		q[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(q, ", ") + "]"
}
