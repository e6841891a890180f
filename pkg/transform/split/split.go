// Package split partitions the rows of a file across several outputs by
// membership of each row's key in per-output key sets.
package split

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/io/csvio"
	"github.com/wdm0006/arffutils/pkg/transform"
)

// KeySet is the set of keys that routes rows to one output.
type KeySet map[string]struct{}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// ReadKeySet loads the keys in column keyCol of a delimited file. Empty
// lines are skipped.
func ReadKeySet(r io.Reader, keyCol int, delim rune) (KeySet, error) {
	set := make(KeySet)
	rows := csvio.NewReader(r, csvio.ReaderOptions{Delimiter: delim})
	err := transform.Each(rows, func(i int, row []string) error {
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			return nil
		}
		k, err := arff.Index(keyCol, len(row))
		if err != nil {
			return fmt.Errorf("key set row %d: %w", i+1, err)
		}
		set[row[k]] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Output is one destination. Relation names the ARFF relation written to it
// when the input is an ARFF.
type Output struct {
	W        io.Writer
	Relation string
}

// Options configures Split.
type Options struct {
	Delimiter rune
	KeyColumn int
	// ProgressEvery is the row interval of progress records; 0 disables them.
	ProgressEvery int
	Logger        log.Logger
}

// DefaultOptions splits comma-delimited rows on column 0 and logs progress
// every 500000 rows.
func DefaultOptions() Options {
	return Options{Delimiter: ',', ProgressEvery: 500000}
}

// Stats counts the rows read and written to each output.
type Stats struct {
	Rows      int
	Written   []int
	Remainder int
}

// Split copies every row of in to each output whose key set contains the
// row's key, and to rest when no set does. Sets are not exclusive.
func Split(in io.Reader, sets []KeySet, outs []Output, rest Output, opt Options) (Stats, error) {
	var st Stats
	if len(sets) != len(outs) {
		return st, fmt.Errorf("split: %d key sets but %d outputs", len(sets), len(outs))
	}
	logger := transform.Logger(opt.Logger)

	h, rows, err := transform.Open(in, opt.Delimiter)
	if err != nil {
		return st, err
	}
	all := append(append([]Output(nil), outs...), rest)
	if h.IsARFF {
		for _, o := range all {
			if err := arff.WriteHeader(o.W, relation(o), h.AttributeLines); err != nil {
				return st, err
			}
		}
	}

	writers := make([]*csvio.Writer, len(all))
	for i, o := range all {
		writers[i] = csvio.NewWriter(o.W, csvio.WriterOptions{Delimiter: opt.Delimiter})
	}
	restW := writers[len(outs)]
	st.Written = make([]int, len(outs))

	err = transform.Each(rows, func(i int, row []string) error {
		if opt.ProgressEvery > 0 && i%opt.ProgressEvery == 0 {
			_ = level.Info(logger).Log("msg", "splitting", "rows", i)
		}
		k, err := arff.Index(opt.KeyColumn, len(row))
		if err != nil {
			return fmt.Errorf("row %d key: %w", i+1, err)
		}
		key := row[k]
		st.Rows++
		hit := false
		for j, set := range sets {
			if !set.Has(key) {
				continue
			}
			hit = true
			st.Written[j]++
			if err := writers[j].Write(row); err != nil {
				return err
			}
		}
		if !hit {
			st.Remainder++
			return restW.Write(row)
		}
		return nil
	})
	if err != nil {
		return st, err
	}
	for _, w := range writers {
		if err := w.Flush(); err != nil {
			return st, err
		}
	}
	_ = level.Info(logger).Log("msg", "done", "rows", st.Rows, "written", fmt.Sprint(st.Written), "remainder", st.Remainder)
	return st, nil
}

func relation(o Output) string {
	if o.Relation == "" {
		return arff.DefaultRelation
	}
	return o.Relation
}
