package merge

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/smartystreets/goconvey/convey"

	"github.com/wdm0006/arffutils/pkg/arff"
)

const mainARFF = `@relation main
@attribute key_col numeric
@attribute target {true,false}
@data
1,true
2,false
`

const addARFF = `@relation additional_input_cols
@attribute key_col numeric
@attribute add_col numeric
@attribute target {a,b}
@data
1,11,a
2,12,b
3,13,a
`

func run(t *testing.T, main, add string, opt Options) (string, string, Stats) {
	t.Helper()
	var diag bytes.Buffer
	opt.Logger = log.NewLogfmtLogger(&diag)
	a, err := LoadAdditional(strings.NewReader(add), opt)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	st, err := Merge(strings.NewReader(main), &out, a, opt)
	if err != nil {
		t.Fatal(err)
	}
	return out.String(), diag.String(), st
}

func TestMergeARFF(t *testing.T) {
	convey.Convey("Given an arff main file and an arff additional file", t, func() {
		want := "@relation output\n\n" +
			"@attribute key_col numeric\n" +
			"@attribute add_col numeric\n" +
			"@attribute target {true,false}\n" +
			"\n@data\n" +
			"1,11,true\n" +
			"2,12,false\n"

		convey.Convey("a numeric range imports the column before the target", func() {
			opt := DefaultOptions()
			opt.AddColumns = "1:2"
			out, diag, st := run(t, mainARFF, addARFF, opt)
			convey.So(out, convey.ShouldEqual, want)
			convey.So(diag, convey.ShouldBeEmpty)
			convey.So(st, convey.ShouldResemble, Stats{Rows: 2, Matched: 2})
		})

		convey.Convey("a named range gives the same result", func() {
			opt := DefaultOptions()
			opt.AddColumns = "add_col:target"
			out, _, _ := run(t, mainARFF, addARFF, opt)
			convey.So(out, convey.ShouldEqual, want)
		})

		convey.Convey("an open range imports through the end of the row", func() {
			opt := DefaultOptions()
			opt.AddColumns = "1:"
			out, _, _ := run(t, mainARFF, addARFF, opt)
			convey.So(out, convey.ShouldContainSubstring, "@attribute add_col numeric\n@attribute target {a,b}\n@attribute target {true,false}\n")
			convey.So(out, convey.ShouldEndWith, "1,11,a,true\n2,12,b,false\n")
		})
	})
}

func TestMergeMissingKeyUsesPlaceholder(t *testing.T) {
	main := mainARFF + "4,false\n"
	opt := DefaultOptions()
	opt.AddColumns = "1:3"
	out, diag, st := run(t, main, addARFF, opt)
	if !strings.HasSuffix(out, "4,?,?,false\n") {
		t.Fatalf("placeholder row missing:\n%s", out)
	}
	if !strings.Contains(diag, "key=4") || !strings.Contains(diag, "level=warn") {
		t.Fatalf("expected a warning for key 4, got %q", diag)
	}
	if strings.Contains(diag, "key=3") {
		t.Fatal("unused additional keys must not warn")
	}
	if st.Missing != 1 || st.Matched != 2 || st.Rows != 3 {
		t.Fatalf("stats %+v", st)
	}
}

func TestMergeWidthIsConstant(t *testing.T) {
	main := "1,x,true\n2,y,false\n9,z,true\n"
	add := "a,1,10,100\nb,2,20,200\nc,3,30,300\n"
	opt := DefaultOptions()
	opt.AddKeyColumn = 1
	opt.AddColumns = "2:"
	out, diag, _ := run(t, main, add, opt)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d rows", len(lines))
	}
	for _, l := range lines {
		if n := len(strings.Split(l, ",")); n != 5 {
			t.Fatalf("row %q has width %d", l, n)
		}
	}
	if lines[2] != "9,z,,,true" {
		t.Fatalf("placeholder row = %q", lines[2])
	}
	if !strings.Contains(diag, "key=9") {
		t.Fatalf("diag = %q", diag)
	}
	if strings.Contains(out, "@relation") {
		t.Fatal("plain csv output must not get a header")
	}
}

func TestMergeARFFWithPlainAdditional(t *testing.T) {
	add := "a,1,11\nb,2,12\n"
	opt := DefaultOptions()
	opt.AddKeyColumn = 1
	opt.AddColumns = "2"
	opt.Relation = "test_output_1"
	out, diag, _ := run(t, mainARFF, add, opt)
	want := "@relation test_output_1\n\n@attribute key_col numeric\n@attribute target {true,false}\n\n@data\n1,11,true\n2,12,false\n"
	if out != want {
		t.Fatalf("got:\n%s", out)
	}
	if !strings.Contains(diag, "hand-edit") {
		t.Fatalf("expected metadata warning, got %q", diag)
	}
}

func TestMergeOutputPosition(t *testing.T) {
	opt := DefaultOptions()
	opt.AddColumns = "1:2"
	opt.OutputPosition = 1
	opt.MainDelimiter = ';'
	opt.OutputDelimiter = '|'
	out, _, _ := run(t, "1;x;y\n", "1,A\n", opt)
	if out != "1|A|x|y\n" {
		t.Fatalf("got %q", out)
	}
}

func TestMergeNamedColumnsNeedARFF(t *testing.T) {
	opt := DefaultOptions()
	opt.AddColumns = "add_col_3"
	_, err := LoadAdditional(strings.NewReader("1,2,3\n"), opt)
	if !errors.Is(err, arff.ErrNamesRequireARFF) {
		t.Fatalf("expected ErrNamesRequireARFF, got %v", err)
	}
}

func TestMergeKeyColumnOutOfRange(t *testing.T) {
	opt := DefaultOptions()
	opt.MainKeyColumn = 7
	a, err := LoadAdditional(strings.NewReader("1,2\n"), opt)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Merge(strings.NewReader("1,2\n"), &bytes.Buffer{}, a, opt)
	if !errors.Is(err, arff.ErrColumnOutOfRange) {
		t.Fatalf("expected ErrColumnOutOfRange, got %v", err)
	}
}

func TestMergeMetadataWarningNeedsMixedInputs(t *testing.T) {
	opt := DefaultOptions()
	opt.AddColumns = "1"
	cases := []struct {
		name, main, add string
		warn            bool
	}{
		{"both plain", "1,x\n", "1,A\n", false},
		{"both arff", mainARFF, addARFF, false},
		{"arff main, plain add", mainARFF, "1,A\n2,B\n", true},
		{"plain main, arff add", "1,x\n", addARFF, true},
	}
	for _, c := range cases {
		_, diag, _ := run(t, c.main, c.add, opt)
		if got := strings.Contains(diag, "hand-edit"); got != c.warn {
			t.Fatalf("%s: warning=%v, diag %q", c.name, got, diag)
		}
	}
}
