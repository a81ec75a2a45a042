package report

import (
	"io"

	"github.com/nao1215/blackholecalc/internal/model"
)

// Writer renders a run or a sweep to its destination.
//
// Design decision: analyze and history --show render single runs while
// sweep renders a table of runs. Both live on one interface so the command
// layer picks a format once, from the --json and --markdown flags.
type Writer interface {
	// Write renders one run and returns the number of bytes written.
	Write(run *model.Run) (int, error)

	// WriteSweep renders a parameter sweep as one table.
	WriteSweep(sweep *model.Sweep) (int, error)
}

// MultiWriter renders the same run with several Writers, for example a
// text report on the terminal and a JSON copy on disk.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders run with every writer, stopping at the first error.
func (m *MultiWriter) Write(run *model.Run) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSweep outputs the sweep to all configured Writers.
func (m *MultiWriter) WriteSweep(sweep *model.Sweep) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSweep(sweep)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the destination shared by every format.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
