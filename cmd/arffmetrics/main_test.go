package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdm0006/arffutils/internal/cli"
)

const data = "@relation train\n@attribute KeyColumn numeric\n@attribute col1 numeric\n@attribute col2 numeric\n@attribute TargetClass {false,true}\n@data\n" +
	"1,1,5,false\n2,2,4,false\n3,3,3,false\n4,4,2,false\n5,5,1,true\n"

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetErr(&stderr)
	cmd.SetOut(&stdout)
	return cli.Execute(cmd), stdout.String(), stderr.String()
}

func TestMetricsCommand(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "train.arff")
	b := filepath.Join(dir, "test.v2.arff")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	html := filepath.Join(dir, "report.html")
	code, stdout, diag := execute(a, html, "--text")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, diag)
	}
	page, err := os.ReadFile(html)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), `id="feature_col1"`) || strings.Contains(string(page), "feature_KeyColumn") {
		t.Fatal("unexpected feature sections")
	}
	if !strings.Contains(stdout, "col2") || !strings.Contains(diag, "msg=\"report written\"") {
		t.Fatalf("stdout %q diag %q", stdout, diag)
	}

	cfg := filepath.Join(dir, "report.yaml")
	if err := os.WriteFile(cfg, []byte("excluded_features: [KeyColumn, col2]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code, _, diag := execute(a, b, html, "--config", cfg); code != 0 {
		t.Fatalf("compare exit %d: %s", code, diag)
	}
	page, _ = os.ReadFile(html)
	if !strings.Contains(string(page), "test") || strings.Contains(string(page), `id="feature_col2"`) {
		t.Fatal("comparison report does not honour the config")
	}
}

func TestMetricsCommandErrors(t *testing.T) {
	if code, _, _ := execute("only.arff"); code != 2 {
		t.Fatalf("one argument: exit %d", code)
	}
	if code, _, _ := execute("a", "b", "c", "d"); code != 2 {
		t.Fatalf("four arguments: exit %d", code)
	}
	if code, _, diag := execute(filepath.Join(t.TempDir(), "none.arff"), "-"); code != 1 {
		t.Fatalf("missing dataset: exit %d: %s", code, diag)
	}
}
