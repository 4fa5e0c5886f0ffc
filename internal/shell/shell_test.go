package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimonWaldherr/toydb/internal/exporter"
)

// scripted replays lines and then returns end.
type scripted struct {
	lines  []string
	end    error
	closed bool
}

func (s *scripted) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", s.end
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scripted) Close() error {
	s.closed = true
	return nil
}

func run(t *testing.T, opts Options, end error, lines ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	sh, err := New(&scripted{lines: lines, end: end}, &out, opts)
	require.NoError(t, err)
	err = sh.Run(context.Background())
	return out.String(), err
}

func TestRunEOF(t *testing.T) {
	out, err := run(t, Options{}, io.EOF)
	require.NoError(t, err)
	assert.Equal(t, "CTRL-D\n", out)
}

func TestRunInterrupt(t *testing.T) {
	out, err := run(t, Options{}, ErrInterrupted, "")
	require.NoError(t, err)
	assert.Equal(t, "CTRL-C\n", out)
}

func TestRunReadError(t *testing.T) {
	boom := errors.New("boom")
	out, err := run(t, Options{}, boom, "select a from t")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Error: boom\n"), out)
	assert.NotContains(t, out, "CTRL-D")
}

func TestRunExitStopsReading(t *testing.T) {
	out, err := run(t, Options{}, io.EOF, ".exit", "select 1")
	require.ErrorIs(t, err, ErrExit)
	assert.Empty(t, out)
}

func TestRunQuit(t *testing.T) {
	_, err := run(t, Options{}, io.EOF, ".quit")
	require.ErrorIs(t, err, ErrExit)
}

func TestRunUnknownMeta(t *testing.T) {
	out, err := run(t, Options{}, io.EOF, ".tables")
	require.NoError(t, err)
	assert.Equal(t, "Unrecognized meta command .tables\nCTRL-D\n", out)
}

func TestRunParseError(t *testing.T) {
	out, err := run(t, Options{}, io.EOF, "selec * frm users")
	require.NoError(t, err)
	assert.Equal(t, "Can not parse command selec * frm users\nCTRL-D\n", out)
}

func TestRunPrintsStatements(t *testing.T) {
	out, err := run(t, Options{Format: "sql"}, io.EOF, "", "   ", "select a from t; delete from t where id = 1")
	require.NoError(t, err)
	assert.Equal(t, "select a from t;\ndelete from t where id = 1;\nCTRL-D\n", out)
}

func TestRunInsertDebug(t *testing.T) {
	out, err := run(t, Options{}, io.EOF, "insert into users (id, name) values (1, 'Alice')")
	require.NoError(t, err)
	assert.Contains(t, out, `Insert { table_name: "users", columns: ["id", "name"], values: [["1", "Alice"]],`)
}

func TestRunFormatSwitch(t *testing.T) {
	out, err := run(t, Options{}, io.EOF, ".format sql", "select a from t", ".format html")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "select a from t;", lines[0])
	assert.Contains(t, lines[1], `unknown output format "html"`)
}

func TestRunExport(t *testing.T) {
	out, err := run(t, Options{Format: "sql", Export: "csv"}, io.EOF,
		"insert into t (a, b) values (1, 'x')",
		"select a from t",
		".export off",
		"insert into t (a) values (2)",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "\na,b\n1,x\nselect a from t;\n")
	assert.Equal(t, 1, strings.Count(out, "a,b\n"), "export must stop after .export off")
	assert.NotContains(t, out, "\na\n2\n")
	assert.True(t, strings.HasSuffix(out, "values (2);\nCTRL-D\n"), out)
}

func TestRunExportOptions(t *testing.T) {
	opts := Options{
		Format:        "sql",
		Export:        "csv",
		ExportOptions: exporter.Options{CSVNoHeader: true, CSVDelimiter: ';'},
	}
	out, err := run(t, opts, io.EOF, "insert into t (a, b) values (1, 'x')")
	require.NoError(t, err)
	assert.Contains(t, out, "\n1;x\nCTRL-D\n")
	assert.NotContains(t, out, "a;b")

	opts = Options{Format: "sql", Export: "json", ExportOptions: exporter.Options{PrettyJSON: true}}
	out, err = run(t, opts, io.EOF, "insert into t (a) values (1)")
	require.NoError(t, err)
	assert.Contains(t, out, "[\n  {\n    \"a\": \"1\"\n  }\n]\n")
}

func TestRunExportUnknown(t *testing.T) {
	out, err := run(t, Options{}, io.EOF, ".export gob")
	require.NoError(t, err)
	assert.Contains(t, out, `unknown export format "gob"`)
}

func TestRunHelp(t *testing.T) {
	out, err := run(t, Options{}, io.EOF, ".help")
	require.NoError(t, err)
	assert.Contains(t, out, ".exit")
	assert.Contains(t, out, ".format NAME")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sh, err := New(&scripted{lines: []string{"select 1"}, end: io.EOF}, io.Discard, Options{})
	require.NoError(t, err)
	require.ErrorIs(t, sh.Run(ctx), context.Canceled)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(&scripted{}, io.Discard, Options{Format: "html"})
	require.Error(t, err)
	_, err = New(&scripted{}, io.Discard, Options{Export: "gob"})
	require.Error(t, err)
}

func TestScanReader(t *testing.T) {
	r := NewScanReader(strings.NewReader("select 1\n.exit\n"))
	line, err := r.Readline()
	require.NoError(t, err)
	assert.Equal(t, "select 1", line)
	line, err = r.Readline()
	require.NoError(t, err)
	assert.Equal(t, ".exit", line)
	_, err = r.Readline()
	require.ErrorIs(t, err, io.EOF)
	require.NoError(t, r.Close())
}
