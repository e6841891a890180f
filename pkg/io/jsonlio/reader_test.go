package jsonlio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdm0006/arffutils/pkg/frame"
)

const sample = `{"x": 1.5, "label": "a", "TargetClass": true}
{"x": "2", "label": "b", "TargetClass": false}
{"label": null, "TargetClass": "true"}
`

func TestJSONLInferAndRead(t *testing.T) {
	r := NewReader(strings.NewReader(sample), ReaderOptions{SampleRows: 2})
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	want := []frame.ColumnSchema{
		{Name: "TargetClass", Type: frame.KindBool},
		{Name: "label", Type: frame.KindString},
		{Name: "x", Type: frame.KindFloat},
	}
	if len(schema.Columns) != len(want) {
		t.Fatalf("schema %+v", schema.Columns)
	}
	for i, cs := range want {
		if schema.Columns[i].Name != cs.Name || schema.Columns[i].Type != cs.Type {
			t.Fatalf("column %d = %+v, want %+v", i, schema.Columns[i], cs)
		}
	}
	f, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", f.Rows())
	}
	if f.Value(1, 2) != 2.0 || f.Value(2, 2) != nil || f.Value(2, 1) != nil || f.Value(2, 0) != true {
		t.Fatalf("unexpected cells: %v %v %v %v", f.Value(1, 2), f.Value(2, 2), f.Value(2, 1), f.Value(2, 0))
	}
}

func TestJSONLWriteReadBack(t *testing.T) {
	s := frame.Schema{Columns: []frame.ColumnSchema{{Name: "a", Type: frame.KindFloat}, {Name: "b", Type: frame.KindString}}}
	f := frame.NewFrame(s)
	f.AppendNullRow()
	_ = f.SetCell(0, "a", 3.0)
	f.AppendNullRow()
	_ = f.SetCell(1, "b", "x")

	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\"a\":3}\n{\"b\":\"x\"}\n" {
		t.Fatalf("got %q", buf.String())
	}

	p := filepath.Join(t.TempDir(), "out.jsonl.gz")
	if err := WriteAll(p, f); err != nil {
		t.Fatal(err)
	}
	back, err := ReadFile(p, ReaderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if back.Rows() != 2 || back.Value(0, 0) != 3.0 || back.Value(1, 1) != "x" {
		t.Fatalf("read back %d rows", back.Rows())
	}
}
