// Package merge inserts columns from an auxiliary file into a primary file,
// joining rows on a key column.
package merge

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/io/csvio"
	"github.com/wdm0006/arffutils/pkg/transform"
)

// Options configures LoadAdditional and Merge.
type Options struct {
	MainDelimiter   rune
	AddDelimiter    rune
	OutputDelimiter rune
	MainKeyColumn   int
	AddKeyColumn    int
	// AddColumns is the "first[:last]" block of auxiliary columns to import.
	// Names are allowed when the auxiliary file is an ARFF.
	AddColumns string
	// OutputPosition is where the block goes in each primary row. Negative
	// values count from the end; -1 inserts before the last column.
	OutputPosition int
	// Relation names the output relation when an ARFF header is written.
	Relation string
	Logger   log.Logger
}

// DefaultOptions mirrors the command-line defaults.
func DefaultOptions() Options {
	return Options{
		MainDelimiter:   ',',
		AddDelimiter:    ',',
		OutputDelimiter: ',',
		AddColumns:      "1:",
		OutputPosition:  -1,
		Relation:        arff.DefaultRelation,
	}
}

// Additional is the auxiliary file held in memory: the imported block of
// each row keyed by the row's key column.
type Additional struct {
	IsARFF         bool
	Columns        arff.Range
	AttributeLines []string
	Rows           map[string][]string
	// Width is the number of imported columns; placeholders use it.
	Width int
}

// LoadAdditional reads the whole auxiliary stream.
func LoadAdditional(r io.Reader, opt Options) (*Additional, error) {
	h, rows, err := transform.Open(r, opt.AddDelimiter)
	if err != nil {
		return nil, fmt.Errorf("additional columns: %w", err)
	}
	spec := opt.AddColumns
	if spec == "" {
		spec = "1:"
	}
	rng, err := h.ResolveRange(spec)
	if err != nil {
		return nil, fmt.Errorf("additional columns: %w", err)
	}
	add := &Additional{IsARFF: h.IsARFF, Columns: rng, Rows: make(map[string][]string), Width: -1}
	if h.IsARFF {
		add.AttributeLines = rng.Slice(h.AttributeLines)
		add.Width = len(add.AttributeLines)
	}
	err = transform.Each(rows, func(i int, row []string) error {
		k, err := arff.Index(opt.AddKeyColumn, len(row))
		if err != nil {
			return fmt.Errorf("additional columns: row %d key: %w", i+1, err)
		}
		seg := rng.Slice(row)
		if add.Width < 0 {
			add.Width = len(seg)
		}
		add.Rows[row[k]] = seg
		return nil
	})
	if err != nil {
		return nil, err
	}
	if add.Width < 0 {
		add.Width = 0
		if !rng.ToEnd && rng.First >= 0 && rng.Last > rng.First {
			add.Width = rng.Last - rng.First
		}
	}
	return add, nil
}

// Stats summarizes one merge.
type Stats struct {
	Rows    int
	Matched int
	Missing int
}

// Merge streams the primary rows from main to out, widening each by the
// auxiliary block for its key. Keys without auxiliary data get a placeholder
// block ("?" cells for ARFF output, empty cells otherwise) and a warning.
func Merge(main io.Reader, out io.Writer, add *Additional, opt Options) (Stats, error) {
	logger := transform.Logger(opt.Logger)
	var st Stats

	h, rows, err := transform.Open(main, opt.MainDelimiter)
	if err != nil {
		return st, fmt.Errorf("main: %w", err)
	}
	if err := writeHeader(out, h, add, opt, logger); err != nil {
		return st, err
	}

	fill := ""
	if h.IsARFF {
		fill = "?"
	}
	missing := make([]string, add.Width)
	for i := range missing {
		missing[i] = fill
	}

	w := csvio.NewWriter(out, csvio.WriterOptions{Delimiter: opt.OutputDelimiter})
	err = transform.Each(rows, func(i int, row []string) error {
		k, err := arff.Index(opt.MainKeyColumn, len(row))
		if err != nil {
			return fmt.Errorf("main: row %d key: %w", i+1, err)
		}
		key := row[k]
		seg, ok := add.Rows[key]
		if ok {
			st.Matched++
		} else {
			st.Missing++
			_ = level.Warn(logger).Log("msg", "key does not have additional data row", "key", key)
			seg = missing
		}
		st.Rows++
		return w.Write(splice(row, seg, opt.OutputPosition))
	})
	if err != nil {
		return st, err
	}
	return st, w.Flush()
}

func writeHeader(out io.Writer, h *arff.Header, add *Additional, opt Options, logger log.Logger) error {
	if h.IsARFF != add.IsARFF {
		_ = level.Warn(logger).Log("msg", "merging arff and non-arff inputs; you'll need to hand-edit the metadata")
	}
	if !h.IsARFF {
		return nil
	}
	lines := h.AttributeLines
	if add.IsARFF {
		lines = splice(lines, add.AttributeLines, opt.OutputPosition)
	}
	rel := opt.Relation
	if rel == "" {
		rel = arff.DefaultRelation
	}
	return arff.WriteHeader(out, rel, lines)
}

// splice returns a copy of row with seg inserted at pos (slice semantics).
func splice(row, seg []string, pos int) []string {
	at := arff.InsertAt(pos, len(row))
	out := make([]string, 0, len(row)+len(seg))
	out = append(out, row[:at]...)
	out = append(out, seg...)
	return append(out, row[at:]...)
}
