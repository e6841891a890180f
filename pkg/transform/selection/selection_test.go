package selection

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/wdm0006/arffutils/pkg/arff"
)

const arffMeta = "@relation foo\n" +
	"\n" +
	"@attribute col0 numeric\n" +
	"@attribute col1 numeric\n" +
	"@attribute col2 numeric\n" +
	"\n" +
	"@data\n"

const csvData = "1,2,5\n3,4,6\n"

func selectString(t *testing.T, in string, cols ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	_, err := Select(strings.NewReader(in), &out, cols, DefaultOptions())
	return out.String(), err
}

func TestSelect(t *testing.T) {
	convey.Convey("Selecting column 1", t, func() {
		convey.Convey("from a plain csv keeps just that field", func() {
			out, err := selectString(t, csvData, "1")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldEqual, "2\n4\n")
		})
		convey.Convey("from an arff keeps the matching attribute line", func() {
			want := "@relation output\n\n@attribute col1 numeric\n\n@data\n2\n4\n"
			for _, c := range []string{"1", "col1"} {
				out, err := selectString(t, arffMeta+csvData, c)
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldEqual, want)
			}
		})
	})

	convey.Convey("Requested order is output order", t, func() {
		out, err := selectString(t, arffMeta+csvData, "col2", "col1")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual,
			"@relation output\n\n@attribute col2 numeric\n@attribute col1 numeric\n\n@data\n5,2\n6,4\n")
	})

	convey.Convey("Selecting every column in order is the identity", t, func() {
		out, err := selectString(t, arffMeta+csvData, "col0", "col1", "col2")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, strings.Replace(arffMeta, "foo", "output", 1)+csvData)

		out, err = selectString(t, csvData, "0", "1", "2")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, csvData)
	})

	convey.Convey("Repeated columns are duplicated", t, func() {
		out, err := selectString(t, csvData, "0", "0")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "1,1\n3,3\n")
	})
}

func TestSelectErrorsBeforeOutput(t *testing.T) {
	cases := []struct {
		in   string
		cols []string
		err  error
	}{
		{csvData, []string{"col1"}, arff.ErrNamesRequireARFF},
		{arffMeta + csvData, []string{"col3"}, arff.ErrUnknownColumn},
		{arffMeta + csvData, []string{"0", "3"}, arff.ErrColumnOutOfRange},
	}
	for _, c := range cases {
		out, err := selectString(t, c.in, c.cols...)
		if !errors.Is(err, c.err) {
			t.Fatalf("%v: expected %v, got %v", c.cols, c.err, err)
		}
		if out != "" {
			t.Fatalf("%v: wrote %q before failing", c.cols, out)
		}
	}
}

func TestSelectDelimiters(t *testing.T) {
	var out bytes.Buffer
	opt := Options{InputDelimiter: '\t', OutputDelimiter: ';'}
	n, err := Select(strings.NewReader("a\tb\tc\nd\te\tf\n"), &out, []string{"-1", "0"}, opt)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || out.String() != "c;a\nf;d\n" {
		t.Fatalf("n=%d out=%q", n, out.String())
	}
}

func TestColumnsNormalizesPositions(t *testing.T) {
	h := &arff.Header{IsARFF: true, AttributeNames: []string{"a", "b"}, AttributeLines: []string{"@attribute a numeric", "@attribute b numeric"}}
	cols, err := Columns(h, []string{"b", "-2"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cols, []int{1, 0}) {
		t.Fatalf("got %v", cols)
	}
	if _, err := Columns(h, nil); err == nil {
		t.Fatal("expected an error for an empty column list")
	}
}

func TestParseColumnList(t *testing.T) {
	cols, err := ParseColumnList(strings.NewReader("  2 3\n\tkey_col\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cols, []string{"2", "3", "key_col"}) {
		t.Fatalf("got %v", cols)
	}
}

func TestSelectPassesFieldsThroughUnchanged(t *testing.T) {
	spaced := "@relation output\n\n@attribute a numeric\n@attribute b numeric\n\n@data\n1, 2\n3, 4\n"
	cases := []struct {
		name string
		in   string
		cols []string
		want string
	}{
		{"leading spaces", spaced, []string{"0", "1"}, spaced},
		{"double quoted value", "x,\"hello world\",y\n", []string{"0", "1", "2"}, "x,\"hello world\",y\n"},
		{"stray quote", "\"a,1\nb,2\n", []string{"1", "0"}, "1,\"a\n2,b\n"},
		{"blank field", "a,1\n,2\nc,3\n", []string{"0"}, "a\n\nc\n"},
	}
	for _, c := range cases {
		out, err := selectString(t, c.in, c.cols...)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if out != c.want {
			t.Fatalf("%s: got %q want %q", c.name, out, c.want)
		}
	}
}

func TestSelectOutputRereadsWithSameRowCount(t *testing.T) {
	var first, second bytes.Buffer
	n1, err := Select(strings.NewReader("a,1\n,2\nc,3\n"), &first, []string{"0"}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	n2, err := Select(strings.NewReader(first.String()), &second, []string{"0"}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if n1 != 3 || n2 != 3 || second.String() != first.String() {
		t.Fatalf("rows %d then %d, output %q then %q", n1, n2, first.String(), second.String())
	}
}
