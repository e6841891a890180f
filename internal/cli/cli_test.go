package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

func TestExecuteExitCodes(t *testing.T) {
	cases := []struct {
		name string
		args []string
		run  error
		want int
	}{
		{"ok", []string{"a"}, nil, 0},
		{"runtime", []string{"a"}, errors.New("boom"), 1},
		{"usage", []string{"a"}, Usagef("bad"), 2},
		{"arg count", []string{}, nil, 2},
		{"unknown flag", []string{"a", "--nope"}, nil, 2},
	}
	for _, c := range cases {
		var stderr bytes.Buffer
		cmd := &cobra.Command{
			Use:  "x",
			Args: Args(cobra.ExactArgs(1)),
			RunE: func(*cobra.Command, []string) error { return c.run },
		}
		cmd.SetArgs(c.args)
		cmd.SetErr(&stderr)
		cmd.SetOut(&stderr)
		if got := Execute(cmd); got != c.want {
			t.Fatalf("%s: exit %d want %d (%s)", c.name, got, c.want, stderr.String())
		}
		if c.want != 0 && !strings.HasPrefix(stderr.String(), "error: ") {
			t.Fatalf("%s: stderr %q", c.name, stderr.String())
		}
	}
}

func TestNewLoggerFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	_ = level.Info(logger).Log("msg", "hidden")
	_ = level.Warn(logger).Log("msg", "shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "msg=shown") {
		t.Fatalf("got %q", buf.String())
	}
	var ue *UsageError
	if _, err := NewLogger(&buf, "loud"); !errors.As(err, &ue) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestOpenReleasesOnFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(in, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open([]string{in, filepath.Join(dir, "missing.csv")}, nil); err == nil {
		t.Fatal("expected an error for a missing input")
	}
	s, err := Open([]string{in}, []string{filepath.Join(dir, "out.csv")})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.In) != 1 || len(s.Out) != 1 {
		t.Fatalf("streams %+v", s)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDelimiterFlag(t *testing.T) {
	d := Delimiter(',')
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().Var(&d, "delim", "")
	cmd.SetArgs([]string{"--delim", "tab"})
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	if code := Execute(cmd); code != 0 || d.Rune() != '\t' {
		t.Fatalf("exit %d, delimiter %q", code, d.Rune())
	}

	cmd = &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().Var(&d, "delim", "")
	cmd.SetArgs([]string{"--delim", ";;"})
	cmd.SetErr(&stderr)
	if code := Execute(cmd); code != 2 {
		t.Fatalf("bad delimiter exit %d", code)
	}
}
