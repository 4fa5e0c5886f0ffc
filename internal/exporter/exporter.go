package exporter

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/SimonWaldherr/toydb/internal/parser"
)

// Formats lists the accepted export format names.
var Formats = []string{"csv", "json", "yaml", "xml"}

// Options controls exporter behavior.
type Options struct {
	PrettyJSON   bool
	CSVNoHeader  bool
	CSVDelimiter rune
}

// Valid reports whether name is an export format.
func Valid(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// Export writes the rows of ins to w in the named format.
func Export(w io.Writer, format string, ins *parser.Insert, opts Options) error {
	switch strings.ToLower(format) {
	case "csv":
		return ExportCSV(w, ins, opts)
	case "json":
		return ExportJSON(w, ins, opts)
	case "yaml", "yml":
		return ExportYAML(w, ins)
	case "xml":
		return ExportXML(w, ins)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// columnName names position i of a row. Rows can be longer than the column
// list (or the list can be empty), so missing names are positional.
func columnName(ins *parser.Insert, i int) string {
	if i < len(ins.Columns) {
		return ins.Columns[i]
	}
	return fmt.Sprintf("column%d", i+1)
}

func header(ins *parser.Insert) []string {
	n := len(ins.Columns)
	for _, row := range ins.Values {
		if len(row) > n {
			n = len(row)
		}
	}
	cols := make([]string, n)
	for i := range cols {
		cols[i] = columnName(ins, i)
	}
	return cols
}

// ExportCSV writes the rows as CSV. Short rows are padded with empty cells.
func ExportCSV(w io.Writer, ins *parser.Insert, opts Options) error {
	csvw := csv.NewWriter(w)
	if opts.CSVDelimiter != 0 {
		csvw.Comma = opts.CSVDelimiter
	}
	cols := header(ins)
	if !opts.CSVNoHeader {
		if err := csvw.Write(cols); err != nil {
			return err
		}
	}
	for _, r := range ins.Values {
		row := make([]string, len(cols))
		copy(row, r)
		if err := csvw.Write(row); err != nil {
			return err
		}
	}
	csvw.Flush()
	return csvw.Error()
}

// ExportJSON writes the rows as a JSON array of objects keyed by column, or
// as an array of arrays when the statement names no columns.
func ExportJSON(w io.Writer, ins *parser.Insert, opts Options) error {
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	if len(ins.Columns) == 0 {
		rows := ins.Values
		if rows == nil {
			rows = [][]string{}
		}
		return enc.Encode(rows)
	}
	out := make([]map[string]string, len(ins.Values))
	for i, r := range ins.Values {
		m := make(map[string]string, len(r))
		for j, v := range r {
			m[columnName(ins, j)] = v
		}
		out[i] = m
	}
	return enc.Encode(out)
}

// ExportYAML writes the rows as a YAML sequence of mappings, keeping the
// column order of the statement.
func ExportYAML(w io.Writer, ins *parser.Insert) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range ins.Values {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for j, v := range r {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: columnName(ins, j)},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
			)
		}
		doc.Content = append(doc.Content, m)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

type xmlField struct {
	XMLName xml.Name
	Name    string `xml:"name,attr,omitempty"`
	Value   string `xml:",chardata"`
}

// xmlColumn is the element for a column. Names that are not XML names,
// such as quoted identifiers with spaces, become <col name="...">.
func xmlColumn(name, value string) xmlField {
	if isXMLName(name) {
		return xmlField{XMLName: xml.Name{Local: name}, Value: value}
	}
	return xmlField{XMLName: xml.Name{Local: "col"}, Name: name, Value: value}
}

// isXMLName is a conservative check for an unprefixed XML element name.
func isXMLName(s string) bool {
	if s == "" || strings.HasPrefix(strings.ToLower(s), "xml") {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

type xmlRow struct {
	Fields []xmlField `xml:",any"`
}

type xmlRows struct {
	XMLName xml.Name `xml:"rows"`
	Table   string   `xml:"table,attr"`
	Rows    []xmlRow `xml:"row"`
}

// ExportXML writes the rows as simple XML: <rows table="t"><row><id>1</id>...</row>...</rows>
func ExportXML(w io.Writer, ins *parser.Insert) error {
	xr := xmlRows{Table: ins.Table, Rows: make([]xmlRow, 0, len(ins.Values))}
	for _, r := range ins.Values {
		xrRow := xmlRow{Fields: make([]xmlField, 0, len(r))}
		for j, v := range r {
			xrRow.Fields = append(xrRow.Fields, xmlColumn(columnName(ins, j), v))
		}
		xr.Rows = append(xr.Rows, xrRow)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(xr); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
