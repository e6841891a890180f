package csvio

import (
	"fmt"
	"unicode/utf8"
)

// ParseDelimiter turns a command-line delimiter into a rune. Besides a
// single character it accepts the escapes `\t` and "tab".
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab", "TAB":
		return '\t', nil
	case "":
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
