// Package frame is a small columnar container for ARFF data: numeric,
// nominal and string columns with per-cell nulls, plus boolean columns for
// derived targets.
package frame

import (
	"fmt"
	"math"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name string
	Type Kind
	// Levels lists the declared values of a nominal column.
	Levels []string
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindFloat
	KindNominal
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindFloat:
		return "numeric"
	case KindNominal:
		return "nominal"
	case KindString:
		return "string"
	}
	return "invalid"
}

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	AppendNull()
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: make([]bool, n)}
}
func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }
func (c *BoolColumn) Append(v bool)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

// FloatColumn stores numeric attributes. Nulls read back as NaN from Float.
type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

func (c *FloatColumn) Float(i int) float64 {
	if c.nulls[i] {
		return math.NaN()
	}
	return c.data[i]
}

// StringColumn stores nominal and string attributes.
type StringColumn struct {
	name   string
	kind   Kind
	levels []string
	data   []string
	nulls  []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, kind: KindString, data: make([]string, n), nulls: make([]bool, n)}
}

// NewNominalColumn creates a string column restricted to levels.
func NewNominalColumn(name string, levels []string, n int) *StringColumn {
	c := NewStringColumn(name, n)
	c.kind = KindNominal
	c.levels = append([]string(nil), levels...)
	return c
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return c.kind }
func (c *StringColumn) Levels() []string         { return c.levels }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

// HasLevel reports whether v is one of the declared nominal values.
// String columns accept anything.
func (c *StringColumn) HasLevel(v string) bool {
	if c.kind != KindNominal {
		return true
	}
	for _, l := range c.levels {
		if l == v {
			return true
		}
	}
	return false
}

// Frame is a columnar container for tabular data.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		switch cs.Type {
		case KindBool:
			f.cols[i] = NewBoolColumn(cs.Name, 0)
		case KindFloat:
			f.cols[i] = NewFloatColumn(cs.Name, 0)
		case KindNominal:
			f.cols[i] = NewNominalColumn(cs.Name, cs.Levels, 0)
		case KindString:
			f.cols[i] = NewStringColumn(cs.Name, 0)
		default:
			panic("invalid column kind")
		}
		f.index[cs.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema      { return f.schema }
func (f *Frame) Rows() int           { return f.nrows }
func (f *Frame) Cols() int           { return len(f.cols) }
func (f *Frame) Column(i int) Column { return f.cols[i] }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Floats returns the named numeric column.
func (f *Frame) Floats(name string) (*FloatColumn, error) {
	c, ok := f.ColumnByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown column: %s", name)
	}
	fc, ok := c.(*FloatColumn)
	if !ok {
		return nil, fmt.Errorf("column %s is %s, not numeric", name, c.Kind())
	}
	return fc, nil
}

// AddColumn appends a column that already holds one value per row.
func (f *Frame) AddColumn(c Column) error {
	if c.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", c.Name(), c.Len(), f.nrows)
	}
	if _, dup := f.index[c.Name()]; dup {
		return fmt.Errorf("duplicate column: %s", c.Name())
	}
	cs := ColumnSchema{Name: c.Name(), Type: c.Kind()}
	if sc, ok := c.(*StringColumn); ok {
		cs.Levels = sc.Levels()
	}
	f.schema.Columns = append(f.schema.Columns, cs)
	f.index[c.Name()] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		c.AppendNull()
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	switch col := f.cols[i].(type) {
	case *BoolColumn:
		if v == nil {
			col.nulls[row] = true
			return nil
		}
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *FloatColumn:
		if v == nil {
			col.nulls[row] = true
			return nil
		}
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		if v == nil {
			col.nulls[row] = true
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		if !col.HasLevel(s) {
			return fmt.Errorf("column %s: %q is not a declared value", name, s)
		}
		col.Set(row, s)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// Value returns the cell as a Go value (nil when null), the shape exporters
// serialize.
func (f *Frame) Value(row, col int) any {
	switch c := f.cols[col].(type) {
	case *BoolColumn:
		if v, ok := c.Get(row); ok {
			return v
		}
	case *FloatColumn:
		if v, ok := c.Get(row); ok {
			return v
		}
	case *StringColumn:
		if v, ok := c.Get(row); ok {
			return v
		}
	}
	return nil
}
