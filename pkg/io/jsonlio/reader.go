package jsonlio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/wdm0006/arffutils/pkg/frame"
	"github.com/wdm0006/arffutils/pkg/io/ioutils"
)

type ReaderOptions struct {
	// SampleRows is how many records InferSchema looks at (default 100).
	SampleRows int
}

// Reader decodes one JSON object per line into a frame.
type Reader struct {
	dec  *json.Decoder
	opt  ReaderOptions
	buf  []map[string]any
	keys []string
}

func NewReader(r io.Reader, opt ReaderOptions) *Reader {
	return &Reader{dec: json.NewDecoder(r), opt: opt}
}

func (r *Reader) next() (map[string]any, error) {
	var m map[string]any
	if err := r.dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("jsonl: %w", err)
	}
	return m, nil
}

// InferSchema samples the first records. Columns are sorted by name; a
// column is bool, numeric or string by majority of its non-null values.
func (r *Reader) InferSchema() (frame.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	keysSet := map[string]struct{}{}
	for len(r.buf) < max {
		m, err := r.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return frame.Schema{}, err
		}
		r.buf = append(r.buf, m)
		for k := range m {
			keysSet[k] = struct{}{}
		}
	}
	r.keys = make([]string, 0, len(keysSet))
	for k := range keysSet {
		r.keys = append(r.keys, k)
	}
	sort.Strings(r.keys)
	kinds := inferKinds(r.buf, r.keys)
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(r.keys))}
	for i, k := range r.keys {
		schema.Columns[i] = frame.ColumnSchema{Name: k, Type: kinds[i]}
	}
	return schema, nil
}

// ReadAll loads every record, the sampled ones first. Keys outside the
// schema are ignored and absent keys are null.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f := frame.NewFrame(schema)
	for _, m := range r.buf {
		if err := setRow(f, m); err != nil {
			return nil, err
		}
	}
	r.buf = nil
	for {
		m, err := r.next()
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		if err := setRow(f, m); err != nil {
			return nil, err
		}
	}
}

// ReadFile loads path ("-" for stdin, gzip allowed) with an inferred schema.
func ReadFile(path string, opt ReaderOptions) (*frame.Frame, error) {
	in, err := ioutils.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	r := NewReader(in, opt)
	schema, err := r.InferSchema()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f, err := r.ReadAll(schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func setRow(f *frame.Frame, m map[string]any) error {
	f.AppendNullRow()
	row := f.Rows() - 1
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		var cell any
		switch cs.Type {
		case frame.KindFloat:
			switch t := v.(type) {
			case float64:
				cell = t
			case string:
				if x, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
					cell = x
				}
			}
		case frame.KindBool:
			switch t := v.(type) {
			case bool:
				cell = t
			case string:
				if x, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(t))); err == nil {
					cell = x
				}
			}
		default:
			switch t := v.(type) {
			case string:
				cell = t
			case float64:
				cell = strconv.FormatFloat(t, 'f', -1, 64)
			default:
				b, _ := json.Marshal(t)
				cell = string(b)
			}
		}
		if cell == nil {
			continue
		}
		if err := f.SetCell(row, cs.Name, cell); err != nil {
			return fmt.Errorf("jsonl: record %d: %w", row+1, err)
		}
	}
	return nil
}

var numRe = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(sample []map[string]any, keys []string) []frame.Kind {
	kinds := make([]frame.Kind, len(keys))
	for i, k := range keys {
		nNum, nBool, nStr := 0, 0, 0
		for _, m := range sample {
			v, ok := m[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case float64:
				nNum++
			case bool:
				nBool++
			case string:
				s := strings.TrimSpace(t)
				if s == "" {
					continue
				}
				if numRe.MatchString(s) {
					nNum++
				} else {
					nStr++
				}
			default:
				nStr++
			}
		}
		switch {
		case nBool > nNum && nBool >= nStr:
			kinds[i] = frame.KindBool
		case nNum > nStr:
			kinds[i] = frame.KindFloat
		default:
			kinds[i] = frame.KindString
		}
	}
	return kinds
}
