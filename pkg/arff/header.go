package arff

import (
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultRelation names the relation of outputs that have no file name.
const DefaultRelation = "output"

var knownExtRe = regexp.MustCompile(`\.(arff|csv|txt)$`)

// EmitHeader returns the header lines of an ARFF with the given relation
// name and attribute declarations, each terminated by a newline.
func EmitHeader(relation string, attributeLines []string) []string {
	lines := make([]string, 0, len(attributeLines)+4)
	lines = append(lines, "@relation "+relation+"\n", "\n")
	for _, l := range attributeLines {
		lines = append(lines, l+"\n")
	}
	return append(lines, "\n", "@data\n")
}

// WriteHeader writes EmitHeader's lines to w.
func WriteHeader(w io.Writer, relation string, attributeLines []string) error {
	_, err := io.WriteString(w, strings.Join(EmitHeader(relation, attributeLines), ""))
	return err
}

// RelationName derives a relation name from a destination path: the base
// name with one trailing .arff, .csv or .txt removed. Unnamed destinations
// ("" or "-") get DefaultRelation.
func RelationName(path string) string {
	if path == "" || path == "-" {
		return DefaultRelation
	}
	return knownExtRe.ReplaceAllString(filepath.Base(path), "")
}
