// Package selection projects a subset of columns, in a caller-chosen order,
// out of an ARFF or delimited file.
package selection

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/io/csvio"
	"github.com/wdm0006/arffutils/pkg/transform"
)

// Options configures Select.
type Options struct {
	InputDelimiter  rune
	OutputDelimiter rune
	// Relation names the output relation when the input is an ARFF.
	Relation string
}

// DefaultOptions uses commas on both sides and the relation "output".
func DefaultOptions() Options {
	return Options{InputDelimiter: ',', OutputDelimiter: ',', Relation: arff.DefaultRelation}
}

// Columns resolves specs against h. For ARFF inputs every position is
// checked against the attribute count, so a bad column fails before any
// output is produced. Plain inputs have no declared width and are checked
// per row.
func Columns(h *arff.Header, specs []string) ([]int, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no columns to select")
	}
	cols := make([]int, len(specs))
	for i, s := range specs {
		c, err := h.Resolve(s)
		if err != nil {
			return nil, err
		}
		if h.IsARFF {
			if c, err = arff.Index(c, h.Width()); err != nil {
				return nil, fmt.Errorf("column %q: %w", s, err)
			}
		}
		cols[i] = c
	}
	return cols, nil
}

// Select copies in to out keeping only the columns named by specs, and
// returns the number of data rows written.
func Select(in io.Reader, out io.Writer, specs []string, opt Options) (int, error) {
	h, rows, err := transform.Open(in, opt.InputDelimiter)
	if err != nil {
		return 0, err
	}
	cols, err := Columns(h, specs)
	if err != nil {
		return 0, err
	}
	if h.IsARFF {
		lines := make([]string, len(cols))
		for i, c := range cols {
			lines[i] = h.AttributeLines[c]
		}
		rel := opt.Relation
		if rel == "" {
			rel = arff.DefaultRelation
		}
		if err := arff.WriteHeader(out, rel, lines); err != nil {
			return 0, err
		}
	}
	w := csvio.NewWriter(out, csvio.WriterOptions{Delimiter: opt.OutputDelimiter})
	n, err := transform.Copy(&projector{w: w, cols: cols}, rows)
	if err != nil {
		return n, err
	}
	return n, w.Flush()
}

type projector struct {
	w    *csvio.Writer
	cols []int
	buf  []string
	row  int
}

func (p *projector) Write(row []string) error {
	p.row++
	p.buf = p.buf[:0]
	for _, c := range p.cols {
		i, err := arff.Index(c, len(row))
		if err != nil {
			return fmt.Errorf("row %d: %w", p.row, err)
		}
		p.buf = append(p.buf, row[i])
	}
	return p.w.Write(p.buf)
}

// ParseColumnList reads a whitespace-separated column list.
func ParseColumnList(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var cols []string
	for sc.Scan() {
		cols = append(cols, sc.Text())
	}
	return cols, sc.Err()
}
