// Package arff reads and writes the metadata header of Weka ARFF files and
// resolves column references against it.
//
// Only what a linear pass-through needs is understood: comments, the
// @relation line, @attribute declarations and the @data marker. Data rows are
// left to the caller, who reads them from the same stream after Scan.
package arff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	relationRe  = regexp.MustCompile(`^(?i:@relation)\s+(?:([^'"\s{},%][^\s{},%]*)|'([^{},%']+)'|"([^{},%"]+)")$`)
	attributeRe = regexp.MustCompile(`^(?i:@attribute)(\s.*)?$`)
	dataRe      = regexp.MustCompile(`^(?i:@data)\b`)
)

// Header is the metadata of one input stream.
//
// AttributeNames and AttributeLines are parallel: AttributeNames[i] is the
// name declared on AttributeLines[i]. MetadataLines holds every header line
// read, comments and blanks included, in input order.
type Header struct {
	IsARFF         bool
	Relation       string
	AttributeNames []string
	AttributeLines []string
	MetadataLines  []string
}

// Width is the number of declared attributes.
func (h *Header) Width() int { return len(h.AttributeNames) }

// Scan determines whether rs holds an ARFF file.
//
// For an ARFF the header is consumed and rs is left positioned on the first
// byte after the @data line. Otherwise rs is rewound to where it was when
// Scan was called, so the caller can read it from the first line as plain
// delimited text. Lines are compared with surrounding whitespace removed and
// stored that way. Comment and blank lines seen before a plain first line are
// still returned in MetadataLines.
func Scan(rs io.ReadSeeker) (*Header, error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSeekable, err)
	}
	ls := &lineScanner{br: bufio.NewReader(rs)}

	h := &Header{}
	var line string
	for {
		text, ok, err := ls.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return &Header{MetadataLines: h.MetadataLines}, rewind(rs, start)
		}
		if text == "" || strings.HasPrefix(text, "%") {
			h.MetadataLines = append(h.MetadataLines, text)
			continue
		}
		line = text
		break
	}

	m := relationRe.FindStringSubmatch(line)
	if m == nil {
		return &Header{MetadataLines: h.MetadataLines}, rewind(rs, start)
	}
	h.IsARFF = true
	h.Relation = m[1] + m[2] + m[3]
	h.MetadataLines = append(h.MetadataLines, line)

	for {
		text, ok, err := ls.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w (relation %q, %d lines read)", ErrMissingData, h.Relation, ls.lineNo)
		}
		h.MetadataLines = append(h.MetadataLines, text)
		if dataRe.MatchString(text) {
			break
		}
		if !attributeRe.MatchString(text) {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, &ParseError{Line: ls.lineNo, Text: text, Reason: "attribute declaration has no name"}
		}
		h.AttributeLines = append(h.AttributeLines, text)
		h.AttributeNames = append(h.AttributeNames, fields[1])
	}

	if _, err := rs.Seek(start+ls.consumed, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSeekable, err)
	}
	return h, nil
}

// ScanReader is Scan for callers holding a plain io.Reader. It fails with
// ErrNotSeekable unless r can also seek.
func ScanReader(r io.Reader) (*Header, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotSeekable, r)
	}
	return Scan(rs)
}

func rewind(rs io.Seeker, offset int64) error {
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrNotSeekable, err)
	}
	return nil
}

// lineScanner reads through a bufio.Reader while counting the bytes handed
// out, so the underlying stream can be repositioned exactly afterwards.
type lineScanner struct {
	br       *bufio.Reader
	consumed int64
	lineNo   int
}

func (s *lineScanner) next() (string, bool, error) {
	raw, err := s.br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if raw == "" {
		return "", false, nil
	}
	s.consumed += int64(len(raw))
	s.lineNo++
	return strings.TrimSpace(raw), true, nil
}
