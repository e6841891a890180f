package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	parquet "github.com/segmentio/parquet-go"

	"github.com/wdm0006/arffutils/pkg/frame"
)

// ReadAll loads a flat Parquet file. Double, float and integer columns
// become numeric, booleans bool and byte arrays strings.
func ReadAll(path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	paths := pf.Schema().Columns()
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(paths))}
	for i, col := range paths {
		leaf, ok := pf.Schema().Lookup(col...)
		if !ok || len(col) != 1 {
			return nil, fmt.Errorf("%s: nested column %s is not supported", path, strings.Join(col, "."))
		}
		k := frame.KindString
		switch leaf.Node.Type().Kind() {
		case parquet.Boolean:
			k = frame.KindBool
		case parquet.Int32, parquet.Int64, parquet.Float, parquet.Double:
			k = frame.KindFloat
		}
		schema.Columns[i] = frame.ColumnSchema{Name: col[0], Type: k}
	}

	out := frame.NewFrame(schema)
	buf := make([]parquet.Row, 256)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				if serr := setRow(out, row); serr != nil {
					_ = rows.Close()
					return nil, serr
				}
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				_ = rows.Close()
				return nil, err
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func setRow(f *frame.Frame, row parquet.Row) error {
	f.AppendNullRow()
	r := f.Rows() - 1
	cols := f.Schema().Columns
	for _, v := range row {
		c := v.Column()
		if v.IsNull() || c < 0 || c >= len(cols) {
			continue
		}
		var cell any
		switch v.Kind() {
		case parquet.Boolean:
			cell = v.Boolean()
		case parquet.Int32:
			cell = float64(v.Int32())
		case parquet.Int64:
			cell = float64(v.Int64())
		case parquet.Float:
			cell = float64(v.Float())
		case parquet.Double:
			cell = v.Double()
		default:
			cell = string(v.ByteArray())
		}
		if err := f.SetCell(r, cols[c].Name, cell); err != nil {
			return fmt.Errorf("parquet row %d: %w", r+1, err)
		}
	}
	return nil
}
