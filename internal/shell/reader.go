package shell

import (
	"bufio"
	"errors"
	"io"

	"github.com/ergochat/readline"
)

// ErrInterrupted is returned by a LineReader when the user pressed Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// LineReader yields one input line per call. It returns io.EOF at the end of
// input and ErrInterrupted on Ctrl-C.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// scanReader reads lines from a non-terminal input such as a pipe or file.
type scanReader struct {
	sc *bufio.Scanner
	c  io.Closer
}

// NewScanReader returns a LineReader over r. No prompt is printed and no
// history is kept.
func NewScanReader(r io.Reader) LineReader {
	sc := bufio.NewScanner(r)
	// Scanner token limit is 64K by default; allow larger statements.
	sc.Buffer(make([]byte, 1024), 4*1024*1024)
	s := &scanReader{sc: sc}
	if c, ok := r.(io.Closer); ok {
		s.c = c
	}
	return s
}

func (s *scanReader) Readline() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scanReader) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

// terminalReader provides line editing and history on a terminal.
type terminalReader struct {
	rl *readline.Instance
}

// NewTerminalReader opens an interactive line editor. Every line read is
// added to the history, which is persisted to historyFile when it is set.
func NewTerminalReader(prompt, historyFile string) (LineReader, error) {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return &terminalReader{rl: rl}, nil
}

func (t *terminalReader) Readline() (string, error) {
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return line, ErrInterrupted
	}
	return line, err
}

func (t *terminalReader) Close() error {
	return t.rl.Close()
}
