// Package parquetio writes frames to Parquet files and reads flat Parquet
// files back into frames.
package parquetio

import (
	"encoding/json"
	"fmt"
	"regexp"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/arffutils/pkg/frame"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]`)

// ColumnName is the Parquet column name used for a frame column. Characters
// outside [A-Za-z0-9_] become underscores.
func ColumnName(name string) string {
	return unsafeName.ReplaceAllString(name, "_")
}

func parquetSchemaJSON(s frame.Schema) (string, error) {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	seen := make(map[string]string)
	for _, cs := range s.Columns {
		name := ColumnName(cs.Name)
		if prev, dup := seen[name]; dup {
			return "", fmt.Errorf("parquet: columns %q and %q share the name %q", prev, cs.Name, name)
		}
		seen[name] = cs.Name
		tag := "name=" + name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case frame.KindFloat:
			tag += "DOUBLE"
		case frame.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, err := json.Marshal(sc)
	return string(b), err
}

// WriteAll writes a frame to a Parquet file using the parquet-go JSONWriter.
func WriteAll(path string, f *frame.Frame) (err error) {
	schema, err := parquetSchemaJSON(f.Schema())
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(schema, fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() {
		if serr := writer.WriteStop(); err == nil && serr != nil {
			err = fmt.Errorf("parquet write stop: %w", serr)
		}
		if cerr := fw.Close(); err == nil {
			err = cerr
		}
	}()

	cols := f.Schema().Columns
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(cols))
		for c, cs := range cols {
			if v := f.Value(r, c); v != nil {
				rec[ColumnName(cs.Name)] = v
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet encode row %d: %w", r+1, err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row %d: %w", r+1, err)
		}
	}
	return nil
}
