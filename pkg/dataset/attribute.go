package dataset

import (
	"fmt"
	"strings"

	"github.com/wdm0006/arffutils/pkg/frame"
)

// Attribute is one parsed @attribute declaration.
type Attribute struct {
	Name   string
	Kind   frame.Kind
	Levels []string // nominal values in declaration order
}

// parseAttribute parses the text after the @attribute keyword.
func parseAttribute(rest string) (Attribute, error) {
	rest = strings.TrimSpace(rest)
	name, typ, err := splitName(rest)
	if err != nil {
		return Attribute{}, err
	}
	a := Attribute{Name: name}
	switch t := strings.ToLower(typ); {
	case strings.HasPrefix(t, "{"):
		if !strings.HasSuffix(t, "}") {
			return a, fmt.Errorf("unterminated nominal values %q", typ)
		}
		a.Kind = frame.KindNominal
		for _, v := range strings.Split(typ[1:len(typ)-1], ",") {
			if v = unquote(strings.TrimSpace(v)); v != "" {
				a.Levels = append(a.Levels, v)
			}
		}
	case t == "numeric", t == "real", t == "integer":
		a.Kind = frame.KindFloat
	case t == "string", strings.HasPrefix(t, "date"):
		a.Kind = frame.KindString
	case t == "":
		return a, fmt.Errorf("attribute %s has no type", name)
	default:
		return a, fmt.Errorf("attribute %s: unsupported type %q", name, typ)
	}
	return a, nil
}

// splitName takes the possibly quoted attribute name off the front of s.
func splitName(s string) (name, rest string, err error) {
	if s == "" {
		return "", "", fmt.Errorf("missing attribute name")
	}
	if q := s[0]; q == '\'' || q == '"' {
		end := strings.IndexByte(s[1:], q)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated attribute name")
		}
		return s[1 : end+1], strings.TrimSpace(s[end+2:]), nil
	}
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, "", nil
	}
	return s[:i], strings.TrimSpace(s[i+1:]), nil
}

func unquote(v string) string {
	if len(v) >= 2 {
		if q := v[0]; (q == '\'' || q == '"') && v[len(v)-1] == q {
			return v[1 : len(v)-1]
		}
	}
	return v
}
