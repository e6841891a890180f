// Package jsonlio reads and writes frames as JSON Lines, one object per row
// with null cells left out.
package jsonlio

import (
	"encoding/json"
	"io"

	"github.com/wdm0006/arffutils/pkg/frame"
	"github.com/wdm0006/arffutils/pkg/io/ioutils"
)

// Write encodes every row of f to w.
func Write(w io.Writer, f *frame.Frame) error {
	enc := json.NewEncoder(w)
	cols := f.Schema().Columns
	for r := 0; r < f.Rows(); r++ {
		m := make(map[string]any, len(cols))
		for c, cs := range cols {
			if v := f.Value(r, c); v != nil {
				m[cs.Name] = v
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll writes f to path ("-" for stdout, .gz compressed).
func WriteAll(path string, f *frame.Frame) (err error) {
	out, err := ioutils.CreateOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(out, f)
}
