// Package dataset loads ARFF files into frames for analysis: numeric and
// nominal feature discovery, missing values and a boolean target column.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/frame"
	"github.com/wdm0006/arffutils/pkg/io/csvio"
	"github.com/wdm0006/arffutils/pkg/io/ioutils"
)

// DefaultTargetClass is the attribute treated as the classification target
// unless Options says otherwise.
const DefaultTargetClass = "TargetClass"

// Missing is the ARFF missing-value token.
const Missing = "?"

type Options struct {
	// TargetClass names the nominal attribute whose "true" value marks
	// positive rows.
	TargetClass string
}

func DefaultOptions() Options { return Options{TargetClass: DefaultTargetClass} }

// Dataset is one loaded ARFF file.
type Dataset struct {
	Name       string
	Relation   string
	Attributes []Attribute
	Frame      *frame.Frame
	// Target is nil when the file has no target attribute. Rows whose
	// target is anything but "true" (missing included) are false.
	Target     *frame.BoolColumn
	TargetName string
}

// Rows is the number of data rows.
func (d *Dataset) Rows() int { return d.Frame.Rows() }

// NumericFeatures lists the numeric attributes in declaration order.
func (d *Dataset) NumericFeatures() []string {
	var out []string
	for _, a := range d.Attributes {
		if a.Kind == frame.KindFloat {
			out = append(out, a.Name)
		}
	}
	return out
}

// NominalFeatures maps each nominal attribute to its declared values
// followed by the missing token.
func (d *Dataset) NominalFeatures() map[string][]string {
	out := make(map[string][]string)
	for _, a := range d.Attributes {
		if a.Kind == frame.KindNominal {
			out[a.Name] = append(append([]string(nil), a.Levels...), Missing)
		}
	}
	return out
}

// Counts returns the number of rows overall, with a false target and with a
// true target. Without a target every row counts as false.
func (d *Dataset) Counts() (all, falses, trues int) {
	all = d.Rows()
	if d.Target == nil {
		return all, all, 0
	}
	for i := 0; i < d.Target.Len(); i++ {
		if v, _ := d.Target.Get(i); v {
			trues++
		}
	}
	return all, all - trues, trues
}

// LoadFile opens path (plain, gzip or "-") and loads it under the name
// NameStub gives it.
func LoadFile(path string, opt Options) (*Dataset, error) {
	in, err := ioutils.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	d, err := Load(in, NameStub(path), opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// NameStub is the base name of path up to its first dot:
// "/data/train.v2.arff" becomes "train".
func NameStub(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// Load reads an ARFF from r. The @relation line is optional; the header
// ends at @data.
func Load(r io.Reader, name string, opt Options) (*Dataset, error) {
	br := bufio.NewReader(r)
	d := &Dataset{Name: name}
	if err := d.readHeader(br); err != nil {
		return nil, err
	}

	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(d.Attributes))}
	for i, a := range d.Attributes {
		schema.Columns[i] = frame.ColumnSchema{Name: a.Name, Type: a.Kind, Levels: a.Levels}
	}
	d.Frame = frame.NewFrame(schema)
	if err := d.readData(br); err != nil {
		return nil, err
	}

	d.setTarget(opt)
	return d, nil
}

func (d *Dataset) setTarget(opt Options) {
	target := opt.TargetClass
	if target == "" {
		target = DefaultTargetClass
	}
	c, ok := d.Frame.ColumnByName(target)
	if !ok {
		return
	}
	d.TargetName = target
	d.Target = frame.NewBoolColumn(target, 0)
	sc, isString := c.(*frame.StringColumn)
	for i := 0; i < d.Rows(); i++ {
		v := false
		if isString {
			s, ok := sc.Get(i)
			v = ok && s == "true"
		}
		d.Target.Append(v)
	}
}

func (d *Dataset) readHeader(br *bufio.Reader) error {
	seen := make(map[string]bool)
	for n := 1; ; n++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if raw == "" && err != nil {
			return arff.ErrMissingData
		}
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)
		switch {
		case line == "", strings.HasPrefix(line, "%"):
		case strings.HasPrefix(lower, "@relation"):
			d.Relation = unquote(strings.TrimSpace(line[len("@relation"):]))
		case strings.HasPrefix(lower, "@attribute"):
			a, perr := parseAttribute(line[len("@attribute"):])
			if perr != nil {
				return &arff.ParseError{Line: n, Text: line, Reason: perr.Error()}
			}
			if seen[a.Name] {
				return &arff.ParseError{Line: n, Text: line, Reason: "duplicate attribute"}
			}
			seen[a.Name] = true
			d.Attributes = append(d.Attributes, a)
		case strings.HasPrefix(lower, "@data"):
			return nil
		default:
			return &arff.ParseError{Line: n, Text: line, Reason: "unexpected header line"}
		}
		if err != nil {
			return arff.ErrMissingData
		}
	}
}

func (d *Dataset) readData(r io.Reader) error {
	rows := csvio.NewReader(r, csvio.ReaderOptions{Delimiter: ',', Comment: '%'})
	width := len(d.Attributes)
	for {
		row, err := rows.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		n := rows.Rows()
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) > 0 && strings.HasPrefix(strings.TrimSpace(row[0]), "{") {
			return fmt.Errorf("data row %d: sparse rows are not supported", n)
		}
		if len(row) != width {
			return fmt.Errorf("data row %d: %d values for %d attributes", n, len(row), width)
		}
		d.Frame.AppendNullRow()
		at := d.Frame.Rows() - 1
		for i, cell := range row {
			a := d.Attributes[i]
			v := unquote(strings.TrimSpace(cell))
			if v == Missing || (v == "" && a.Kind != frame.KindString) {
				continue
			}
			var val any = v
			if a.Kind == frame.KindFloat {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return fmt.Errorf("data row %d: %s: %w", n, a.Name, err)
				}
				val = f
			}
			if err := d.Frame.SetCell(at, a.Name, val); err != nil {
				return fmt.Errorf("data row %d: %w", n, err)
			}
		}
	}
}
