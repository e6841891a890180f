package csvio

import (
	"bufio"
	"io"
	"strings"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// Writer writes newline-terminated delimited rows. Fields are joined as they
// are; nothing is quoted or escaped.
type Writer struct {
	bw  *bufio.Writer
	sep string
	err error
}

func NewWriter(w io.Writer, opt WriterOptions) *Writer {
	d := opt.Delimiter
	if d == 0 {
		d = ','
	}
	return &Writer{bw: bufio.NewWriter(w), sep: string(d)}
}

func (w *Writer) Write(row []string) error {
	if w.err != nil {
		return w.err
	}
	if _, w.err = w.bw.WriteString(strings.Join(row, w.sep)); w.err == nil {
		w.err = w.bw.WriteByte('\n')
	}
	return w.err
}

// Flush writes buffered rows and reports any earlier write error.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.bw.Flush()
	return w.err
}
