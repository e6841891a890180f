package csvio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type ReaderOptions struct {
	Delimiter rune // default ','
	Comment   rune // lines starting with it are skipped; 0 keeps every line
}

// Reader yields delimited rows. Fields are split on the delimiter with no
// quoting rules, so quotes stay part of the field. Rows may differ in width
// and an empty line is a row holding one empty field.
type Reader struct {
	br      *bufio.Reader
	sep     string
	comment string
	rows    int
}

// NewReader reads rows from r, which is typically positioned just after an
// ARFF header by arff.Scan.
func NewReader(r io.Reader, opt ReaderOptions) *Reader {
	d := opt.Delimiter
	if d == 0 {
		d = ','
	}
	rd := &Reader{br: bufio.NewReader(r), sep: string(d)}
	if opt.Comment != 0 && opt.Comment != d {
		rd.comment = string(opt.Comment)
	}
	return rd
}

// Read returns the next row, or io.EOF after the last one. The returned slice
// is owned by the caller.
func (r *Reader) Read() ([]string, error) {
	for {
		line, err := r.br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("row %d: %w", r.rows+1, err)
		}
		if line == "" && err != nil {
			return nil, io.EOF
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if r.comment != "" && strings.HasPrefix(line, r.comment) {
			continue
		}
		r.rows++
		return strings.Split(line, r.sep), nil
	}
}

// Rows is the number of rows read so far.
func (r *Reader) Rows() int { return r.rows }

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([][]string, error) {
	var out [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}
