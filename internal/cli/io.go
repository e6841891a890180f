package cli

import (
	"errors"

	"github.com/wdm0006/arffutils/pkg/io/ioutils"
)

// Streams is a set of opened inputs and outputs closed together.
type Streams struct {
	In  []*ioutils.Input
	Out []*ioutils.Output
}

// Open acquires every input and output path. On failure nothing stays open.
func Open(in, out []string) (*Streams, error) {
	s := &Streams{}
	for _, p := range in {
		f, err := ioutils.OpenInput(p)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.In = append(s.In, f)
	}
	for _, p := range out {
		o, err := ioutils.CreateOutput(p)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.Out = append(s.Out, o)
	}
	return s, nil
}

// Close flushes the outputs and releases everything Open acquired.
func (s *Streams) Close() error {
	var errs []error
	for _, in := range s.In {
		errs = append(errs, in.Close())
	}
	for _, o := range s.Out {
		errs = append(errs, o.Close())
	}
	return errors.Join(errs...)
}
