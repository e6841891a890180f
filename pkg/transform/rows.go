// Package transform holds the row loop shared by the merge, selection and
// split transformers.
package transform

import (
	"errors"
	"io"

	"github.com/go-kit/log"

	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/io/csvio"
)

// RowSource yields rows until io.EOF.
type RowSource interface {
	Read() ([]string, error)
}

// RowSink consumes rows, typically writing them out.
type RowSink interface {
	Write(row []string) error
}

// Open scans the metadata of r and returns a reader for the data rows that
// follow it. ARFF data sections skip % comment lines.
func Open(r io.Reader, delim rune) (*arff.Header, *csvio.Reader, error) {
	h, err := arff.ScanReader(r)
	if err != nil {
		return nil, nil, err
	}
	opt := csvio.ReaderOptions{Delimiter: delim}
	if h.IsARFF {
		opt.Comment = '%'
	}
	return h, csvio.NewReader(r, opt), nil
}

// Each pulls rows from src and hands them to fn, with their 0-based
// position, until src is exhausted.
func Each(src RowSource, fn func(i int, row []string) error) error {
	for i := 0; ; i++ {
		row, err := src.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(i, row); err != nil {
			return err
		}
	}
}

// Copy writes every row of src to sink and returns how many were copied.
func Copy(sink RowSink, src RowSource) (int, error) {
	n := 0
	err := Each(src, func(_ int, row []string) error {
		n++
		return sink.Write(row)
	})
	return n, err
}

// Logger returns l, or a logger that discards everything when l is nil.
func Logger(l log.Logger) log.Logger {
	if l == nil {
		return log.NewNopLogger()
	}
	return l
}
