package evaluator

import (
	"bufio"
	"io"
)

// Host is the external collaborator spec.md §6 names: get_input/output,
// plus Prompt for unterminated prompt text. It has no error method: fatal
// host errors are returned as *hosterr.HostError values and handed back
// to the driver's caller. It is supplied by the driver, never constructed by the evaluator
// itself, mirroring how the teacher's Evaluator only ever writes to an
// injected io.Writer (internal/evaluator/evaluator.go: Evaluator.Out) and
// never owns stdio directly.
type Host interface {
	// GetInput reads one line (without its trailing newline) from the
	// host's input stream.
	GetInput() (string, error)
	// Output emits a string followed by a newline.
	Output(line string)
	// Prompt emits a string with no trailing newline, for inputi/inputs
	// prompts. Always written when the caller supplies one (spec.md §4.9
	// does not gate this on whether the destination is a terminal).
	Prompt(text string)
}

// StdHost is the default Host, backed by process stdin/stdout. Grounded on
// the teacher's shared buffered stdin reader (internal/evaluator/
// builtins_io.go: getStdinReader/stdinReaderOnce), adapted to instance
// state since a Host here is owned by one Evaluator (no global singleton,
// since spec.md's Non-goals explicitly exclude concurrent language
// execution but a host process may still run several interpreters, e.g.
// cmd/brewin's batch mode).
type StdHost struct {
	in           *bufio.Reader
	buf          *bufio.Writer
	flushPerLine bool
}

// NewStdHost builds a Host over the given input/output streams, flushing
// output after every line (matching the teacher's unbuffered Out writer).
func NewStdHost(in io.Reader, out io.Writer) *StdHost {
	return &StdHost{in: bufio.NewReader(in), buf: bufio.NewWriter(out), flushPerLine: true}
}

// WithFlushPerLine overrides the per-line flush behavior (cmd/brewin's
// --flush-per-line flag): false defers flushing to Flush/process exit,
// trading prompt visibility for throughput in a non-interactive batch run.
func (h *StdHost) WithFlushPerLine(flush bool) *StdHost {
	h.flushPerLine = flush
	return h
}

// Flush writes any buffered output, for callers that disabled per-line
// flushing and need to guarantee output lands before the process exits.
func (h *StdHost) Flush() {
	h.buf.Flush()
}

func (h *StdHost) GetInput() (string, error) {
	line, err := h.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}

func (h *StdHost) Output(line string) {
	io.WriteString(h.buf, line)
	io.WriteString(h.buf, "\n")
	if h.flushPerLine {
		h.buf.Flush()
	}
}

func (h *StdHost) Prompt(text string) {
	io.WriteString(h.buf, text)
	if h.flushPerLine {
		h.buf.Flush()
	}
}
