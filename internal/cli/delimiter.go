package cli

import (
	"github.com/wdm0006/arffutils/pkg/io/csvio"
)

// Delimiter is a single-character field delimiter flag. Bad values fail
// flag parsing.
type Delimiter rune

func (d *Delimiter) Set(s string) error {
	r, err := csvio.ParseDelimiter(s)
	if err != nil {
		return err
	}
	*d = Delimiter(r)
	return nil
}

func (d *Delimiter) String() string {
	if *d == '\t' {
		return `\t`
	}
	return string(rune(*d))
}

func (d *Delimiter) Type() string { return "char" }

// Rune returns the delimiter as a rune.
func (d Delimiter) Rune() rune { return rune(d) }
