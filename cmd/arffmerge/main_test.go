package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdm0006/arffutils/internal/cli"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func execute(args ...string) (int, string) {
	var stderr bytes.Buffer
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetErr(&stderr)
	cmd.SetOut(&stderr)
	return cli.Execute(cmd), stderr.String()
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	main := write(t, dir, "main.arff", "@relation main\n@attribute key_col numeric\n@attribute target {true,false}\n@data\n1,true\n2,false\n4,true\n")
	add := write(t, dir, "add.arff", "@relation add\n@attribute key_col numeric\n@attribute add_col numeric\n@data\n1,11\n2,12\n")
	out := filepath.Join(dir, "test_output_1.arff")

	code, diag := execute(main, add, out, "-i", "add_col")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, diag)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "@relation test_output_1\n\n@attribute key_col numeric\n@attribute add_col numeric\n@attribute target {true,false}\n\n@data\n1,11,true\n2,12,false\n4,?,true\n"
	if string(b) != want {
		t.Fatalf("got:\n%s", b)
	}
	if !strings.Contains(diag, "level=warn") || !strings.Contains(diag, "key=4") {
		t.Fatalf("diag %q", diag)
	}

	if code, _ := execute(main, add, out, "--log-level", "error", "-i", "add_col"); code != 0 {
		t.Fatalf("exit %d", code)
	}
}

func TestMergeCommandErrors(t *testing.T) {
	dir := t.TempDir()
	plain := write(t, dir, "main.csv", "1,a\n")
	cases := []struct {
		args []string
		want int
	}{
		{[]string{plain, plain}, 2},
		{[]string{plain, plain, "-", "--main-csv-delim", "ab"}, 2},
		{[]string{plain, plain, "-", "-i", "some_name"}, 1},
		{[]string{plain, filepath.Join(dir, "missing.csv"), "-"}, 1},
	}
	for _, c := range cases {
		if code, diag := execute(c.args...); code != c.want {
			t.Fatalf("%v: exit %d want %d: %s", c.args, code, c.want, diag)
		}
	}
}
