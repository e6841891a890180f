package ioutils

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Input is a seekable text source. Close releases only what OpenInput
// acquired itself; inputs built with WrapInput are never closed.
type Input struct {
	io.ReadSeeker
	name    string
	closeFn func() error
}

// Name is the path the input was opened from ("-" for stdin).
func (in *Input) Name() string { return in.name }

func (in *Input) Close() error {
	if in.closeFn == nil {
		return nil
	}
	fn := in.closeFn
	in.closeFn = nil
	return fn()
}

// WrapInput adopts a caller-owned stream. Closing the Input leaves rs open.
func WrapInput(rs io.ReadSeeker, name string) *Input {
	return &Input{ReadSeeker: rs, name: name}
}

// OpenInput opens a file path or stdin ("-") for reading. The result is
// always seekable: gzip content (by extension or magic) and non-seekable
// stdin are spooled to a temporary file first, which Close removes.
func OpenInput(path string) (*Input, error) {
	if path == "-" || path == "" {
		if isSeekableFile(os.Stdin) {
			return &Input{ReadSeeker: os.Stdin, name: "-"}, nil
		}
		return spool(os.Stdin, "-", nil)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gz, err := isGzip(f, path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !gz {
		return &Input{ReadSeeker: f, name: path, closeFn: f.Close}, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spool(zr, path, func() error { _ = zr.Close(); return f.Close() })
}

// spool copies r into a temporary file and returns it rewound. done, if set,
// is called once the copy finished.
func spool(r io.Reader, name string, done func() error) (*Input, error) {
	tmp, err := os.CreateTemp("", "arffutils-*")
	if err != nil {
		return nil, err
	}
	cleanup := func() error {
		cerr := tmp.Close()
		rerr := os.Remove(tmp.Name())
		return errors.Join(cerr, rerr)
	}
	_, cpErr := io.Copy(tmp, r)
	var doneErr error
	if done != nil {
		doneErr = done()
	}
	if err := errors.Join(cpErr, doneErr); err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("spool %s: %w", name, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = cleanup()
		return nil, err
	}
	return &Input{ReadSeeker: tmp, name: name, closeFn: cleanup}, nil
}

func isSeekableFile(f *os.File) bool {
	st, err := f.Stat()
	if err != nil || !st.Mode().IsRegular() {
		return false
	}
	_, err = f.Seek(0, io.SeekCurrent)
	return err == nil
}

func isGzip(f *os.File, path string) (bool, error) {
	if strings.HasSuffix(path, ".gz") {
		return true, nil
	}
	var magic [2]byte
	n, err := io.ReadFull(f, magic[:])
	if _, serr := f.Seek(0, io.SeekStart); serr != nil {
		return false, serr
	}
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return n == 2 && magic[0] == 0x1f && magic[1] == 0x8b, nil
}

// Output is a buffered text destination. Close flushes, then releases only
// what CreateOutput acquired itself.
type Output struct {
	io.Writer
	bw      *bufio.Writer
	name    string
	closeFn func() error
}

// Name is the destination path without a compression suffix ("-" for stdout).
func (o *Output) Name() string { return strings.TrimSuffix(o.name, ".gz") }

// Flush pushes buffered bytes to the underlying writer.
func (o *Output) Flush() error { return o.bw.Flush() }

func (o *Output) Close() error {
	err := o.bw.Flush()
	if o.closeFn != nil {
		fn := o.closeFn
		o.closeFn = nil
		err = errors.Join(err, fn())
	}
	return err
}

// WrapOutput adopts a caller-owned writer. Closing the Output flushes but
// leaves w open.
func WrapOutput(w io.Writer, name string) *Output {
	bw := bufio.NewWriter(w)
	return &Output{Writer: bw, bw: bw, name: name}
}

// CreateOutput creates a file (or stdout if path is "-") and returns a
// writer. If the path ends in .gz, the writer is gzip compressed.
func CreateOutput(path string) (*Output, error) {
	if path == "-" || path == "" {
		return WrapOutput(os.Stdout, "-"), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		bw := bufio.NewWriter(zw)
		return &Output{Writer: bw, bw: bw, name: path, closeFn: func() error {
			return errors.Join(zw.Close(), f.Close())
		}}, nil
	}
	bw := bufio.NewWriter(f)
	return &Output{Writer: bw, bw: bw, name: path, closeFn: f.Close}, nil
}
