package dataset

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/frame"
	"github.com/wdm0006/arffutils/pkg/io/csvio"
)

// FromFrame builds a dataset from a frame read from another format. Bool
// columns become nominal {false,true}; string columns become nominal over
// their sorted observed values. Numeric columns stay numeric.
func FromFrame(name string, f *frame.Frame, opt Options) (*Dataset, error) {
	in := f.Schema().Columns
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(in))}
	d := &Dataset{Name: name, Relation: name}
	for i, cs := range in {
		a := Attribute{Name: cs.Name, Kind: cs.Type, Levels: cs.Levels}
		switch cs.Type {
		case frame.KindFloat, frame.KindNominal:
		case frame.KindBool:
			a.Kind, a.Levels = frame.KindNominal, []string{"false", "true"}
		case frame.KindString:
			a.Kind, a.Levels = frame.KindNominal, observedLevels(f, i)
		default:
			return nil, fmt.Errorf("column %s: unsupported kind %s", cs.Name, cs.Type)
		}
		d.Attributes = append(d.Attributes, a)
		schema.Columns[i] = frame.ColumnSchema{Name: a.Name, Type: a.Kind, Levels: a.Levels}
	}

	d.Frame = frame.NewFrame(schema)
	for r := 0; r < f.Rows(); r++ {
		d.Frame.AppendNullRow()
		for c, cs := range in {
			v := f.Value(r, c)
			if b, ok := v.(bool); ok {
				v = strconv.FormatBool(b)
			}
			if v == nil || v == Missing {
				continue
			}
			if err := d.Frame.SetCell(r, cs.Name, v); err != nil {
				return nil, fmt.Errorf("row %d: %w", r+1, err)
			}
		}
	}
	d.setTarget(opt)
	return d, nil
}

func observedLevels(f *frame.Frame, col int) []string {
	seen := make(map[string]struct{})
	for r := 0; r < f.Rows(); r++ {
		if s, ok := f.Value(r, col).(string); ok && s != Missing {
			seen[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// WriteARFF writes d as a dense ARFF file. Null cells are written as "?".
// Data rows are not escaped, so string values may not contain commas or
// line breaks.
func WriteARFF(w io.Writer, d *Dataset) error {
	rel := d.Relation
	if rel == "" {
		rel = d.Name
	}
	if rel == "" {
		rel = arff.DefaultRelation
	}
	lines := make([]string, len(d.Attributes))
	for i, a := range d.Attributes {
		lines[i] = a.Line()
	}
	if err := arff.WriteHeader(w, quote(rel), lines); err != nil {
		return err
	}
	cw := csvio.NewWriter(w, csvio.WriterOptions{Delimiter: ','})
	row := make([]string, len(d.Attributes))
	for r := 0; r < d.Rows(); r++ {
		for c := range d.Attributes {
			switch v := d.Frame.Value(r, c).(type) {
			case nil:
				row[c] = Missing
			case float64:
				row[c] = strconv.FormatFloat(v, 'g', -1, 64)
			case bool:
				row[c] = strconv.FormatBool(v)
			case string:
				if strings.ContainsAny(v, ",\r\n") {
					return fmt.Errorf("row %d: %s: value %q holds a field or row separator", r+1, d.Attributes[c].Name, v)
				}
				row[c] = quote(v)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Flush()
}

// Line renders the attribute as an @attribute declaration.
func (a Attribute) Line() string {
	var typ string
	switch a.Kind {
	case frame.KindFloat:
		typ = "numeric"
	case frame.KindNominal:
		vals := make([]string, len(a.Levels))
		for i, l := range a.Levels {
			vals[i] = quote(l)
		}
		typ = "{" + strings.Join(vals, ",") + "}"
	default:
		typ = "string"
	}
	return "@attribute " + quote(a.Name) + " " + typ
}

// quote wraps v in quotes when it would not survive as a bare token. Values
// holding a single quote get double quotes.
func quote(v string) string {
	if v != "" && v != Missing && !strings.ContainsAny(v, " \t,{}'\"%") {
		return v
	}
	if strings.ContainsRune(v, '\'') {
		return `"` + v + `"`
	}
	return "'" + v + "'"
}
