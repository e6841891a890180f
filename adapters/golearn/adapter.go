// Package golearn converts between loaded datasets and
// github.com/sjwhitworth/golearn/base DenseInstances.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/arffutils/pkg/dataset"
	"github.com/wdm0006/arffutils/pkg/frame"
)

// ToDenseInstances converts a dataset into golearn DenseInstances. Numeric
// attributes become float attributes and everything else categorical. The
// target attribute, when the dataset has one, is the class attribute.
// Missing numeric cells are NaN; missing categorical cells are "?".
func ToDenseInstances(d *dataset.Dataset) (*base.DenseInstances, error) {
	f := d.Frame
	cols := f.Schema().Columns
	attrs := make([]base.Attribute, len(cols))
	for i, cs := range cols {
		if cs.Type == frame.KindFloat {
			attrs[i] = base.NewFloatAttribute(cs.Name)
			continue
		}
		ca := base.NewCategoricalAttribute()
		ca.SetName(cs.Name)
		for _, l := range cs.Levels {
			ca.GetSysValFromString(l)
		}
		attrs[i] = ca
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c := range cols {
			switch col := f.Column(c).(type) {
			case *frame.FloatColumn:
				inst.Set(specs[c], r, base.PackFloatToBytes(col.Float(r)))
			case *frame.StringColumn:
				v, ok := col.Get(r)
				if !ok {
					v = dataset.Missing
				}
				inst.Set(specs[c], r, attrs[c].GetSysValFromString(v))
			case *frame.BoolColumn:
				v, _ := col.Get(r)
				inst.Set(specs[c], r, attrs[c].GetSysValFromString(fmt.Sprint(v)))
			}
		}
	}
	if d.TargetName != "" {
		for i, cs := range cols {
			if cs.Name == d.TargetName {
				if err := inst.AddClassAttribute(attrs[i]); err != nil {
					return nil, err
				}
			}
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a dataset named
// name. Float attributes become numeric columns and categorical attributes
// nominal ones. The first class attribute, if any, becomes the target.
func FromDenseInstances(inst *base.DenseInstances, name string) (*dataset.Dataset, error) {
	attrs := inst.AllAttributes()
	d := &dataset.Dataset{Name: name}
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		da := dataset.Attribute{Name: a.GetName(), Kind: frame.KindFloat}
		if ca, ok := a.(*base.CategoricalAttribute); ok {
			da.Kind = frame.KindNominal
			da.Levels = ca.GetValues()
		} else if _, ok := a.(*base.FloatAttribute); !ok {
			return nil, fmt.Errorf("attribute %s: unsupported golearn type %T", a.GetName(), a)
		}
		d.Attributes = append(d.Attributes, da)
		schema.Columns[i] = frame.ColumnSchema{Name: da.Name, Type: da.Kind, Levels: da.Levels}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	f := frame.NewFrame(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			raw := inst.Get(specs[c], r)
			var v any
			if cs.Type == frame.KindFloat {
				fv := base.UnpackBytesToFloat(raw)
				if math.IsNaN(fv) {
					continue
				}
				v = fv
			} else {
				s := attrs[c].GetStringFromSysVal(raw)
				if s == dataset.Missing {
					continue
				}
				v = s
			}
			if err := f.SetCell(r, cs.Name, v); err != nil {
				return nil, err
			}
		}
	}
	d.Frame = f

	if class := inst.AllClassAttributes(); len(class) > 0 {
		d.TargetName = class[0].GetName()
		d.Target = frame.NewBoolColumn(d.TargetName, 0)
		col, _ := f.ColumnByName(d.TargetName)
		sc, _ := col.(*frame.StringColumn)
		for r := 0; r < nrows; r++ {
			truth := false
			if sc != nil {
				s, ok := sc.Get(r)
				truth = ok && s == "true"
			}
			d.Target.Append(truth)
		}
	}
	return d, nil
}
