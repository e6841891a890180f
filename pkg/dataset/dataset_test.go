package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/frame"
)

const tclass = "tclass"

const sample = "@attribute numeric_col numeric\n" +
	"@attribute nominal_col {A,B}\n" +
	"@attribute tclass {false,true}\n" +
	"@data\n" +
	"1.0,A,false\n" +
	"2.0,B,true"

func TestLoad(t *testing.T) {
	convey.Convey("Given an arff without a relation line", t, func() {
		d, err := Load(strings.NewReader(sample), "arff_test", Options{TargetClass: tclass})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("the name and features are discovered", func() {
			convey.So(d.Name, convey.ShouldEqual, "arff_test")
			convey.So(d.NumericFeatures(), convey.ShouldResemble, []string{"numeric_col"})
			nom := d.NominalFeatures()
			convey.So(len(nom), convey.ShouldEqual, 2)
			convey.So(nom["nominal_col"], convey.ShouldResemble, []string{"A", "B", "?"})
			convey.So(nom[tclass], convey.ShouldResemble, []string{"false", "true", "?"})
		})

		convey.Convey("the data and target are loaded", func() {
			convey.So(d.Rows(), convey.ShouldEqual, 2)
			convey.So(d.Frame.Value(0, 1), convey.ShouldEqual, "A")
			convey.So(d.Frame.Value(0, 0), convey.ShouldEqual, 1.0)
			t0, _ := d.Target.Get(0)
			t1, _ := d.Target.Get(1)
			convey.So(t0, convey.ShouldBeFalse)
			convey.So(t1, convey.ShouldBeTrue)
			all, f, tr := d.Counts()
			convey.So([]int{all, f, tr}, convey.ShouldResemble, []int{2, 1, 1})
		})
	})
}

func TestLoadMissingValues(t *testing.T) {
	in := "% leading comment\n@relation 'with space'\n\n" +
		"@attribute x real\n@attribute 'quoted name' {'a b',c}\n@attribute s string\n@attribute TargetClass {false,true}\n" +
		"@data\n% comment row\n?,c,hello,?\n\n,'a b',?,true\n"
	d, err := Load(strings.NewReader(in), "m", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if d.Relation != "with space" {
		t.Fatalf("relation = %q", d.Relation)
	}
	x, err := d.Frame.Floats("x")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(x.Float(0)) || !math.IsNaN(x.Float(1)) {
		t.Fatal("expected missing numeric values")
	}
	c, _ := d.Frame.ColumnByName("quoted name")
	if v, ok := c.(*frame.StringColumn).Get(1); !ok || v != "a b" {
		t.Fatalf("quoted nominal = %q", v)
	}
	if d.Frame.Value(1, 2) != nil {
		t.Fatal("expected a missing string")
	}
	if v, _ := d.Target.Get(0); v {
		t.Fatal("missing target must read as false")
	}
	if _, _, tr := d.Counts(); tr != 1 {
		t.Fatalf("true count = %d", tr)
	}
}

func TestLoadErrors(t *testing.T) {
	var pe *arff.ParseError
	cases := []struct {
		name string
		in   string
		want func(error) bool
	}{
		{"no data", "@attribute x numeric\n", func(err error) bool { return errors.Is(err, arff.ErrMissingData) }},
		{"bare attribute", "@attribute\n@data\n", func(err error) bool { return errors.As(err, &pe) && pe.Line == 1 }},
		{"bad type", "@relation r\n@attribute x blob\n@data\n", func(err error) bool { return errors.As(err, &pe) && pe.Line == 2 }},
		{"duplicate", "@attribute x numeric\n@attribute x numeric\n@data\n", func(err error) bool { return errors.As(err, &pe) }},
		{"width", "@attribute x numeric\n@data\n1,2\n", func(err error) bool { return err != nil && strings.Contains(err.Error(), "2 values") }},
		{"number", "@attribute x numeric\n@data\nabc\n", func(err error) bool { return err != nil && strings.Contains(err.Error(), "x") }},
		{"level", "@attribute c {A}\n@data\nZ\n", func(err error) bool { return err != nil }},
		{"sparse", "@attribute x numeric\n@data\n{0 1}\n", func(err error) bool { return err != nil && strings.Contains(err.Error(), "sparse") }},
	}
	for _, c := range cases {
		_, err := Load(strings.NewReader(c.in), "e", DefaultOptions())
		if !c.want(err) {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
	}
}

func TestLoadWithoutTarget(t *testing.T) {
	d, err := Load(strings.NewReader("@attribute x numeric\n@data\n1\n2\n"), "n", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if d.Target != nil || d.TargetName != "" {
		t.Fatal("no target attribute expected")
	}
	if all, f, tr := d.Counts(); all != 2 || f != 2 || tr != 0 {
		t.Fatalf("counts %d %d %d", all, f, tr)
	}
}

func TestNameStub(t *testing.T) {
	cases := map[string]string{
		"/home/moy/foo/bar.arff": "bar",
		"train.v2.arff.gz":       "train",
		"plain":                  "plain",
	}
	for in, want := range cases {
		if got := NameStub(in); got != want {
			t.Fatalf("NameStub(%q) = %q", in, got)
		}
	}
}

func TestLoadFileAndInstances(t *testing.T) {
	p := filepath.Join(t.TempDir(), "iris.small.arff")
	body := "@RELATION iris\n\n" +
		"@ATTRIBUTE sepallength REAL\n" +
		"@ATTRIBUTE petalwidth REAL\n" +
		"@ATTRIBUTE class {Iris-setosa,Iris-virginica}\n\n" +
		"@DATA\n" +
		"5.1,0.2,Iris-setosa\n" +
		"6.3,2.5,Iris-virginica\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(p, Options{TargetClass: "class"})
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "iris" || d.Rows() != 2 || len(d.NumericFeatures()) != 2 {
		t.Fatalf("got %s with %d rows", d.Name, d.Rows())
	}

	inst, err := LoadInstances(p)
	if err != nil {
		t.Fatal(err)
	}
	cols, rows := inst.Size()
	if cols != 3 || rows != 2 {
		t.Fatalf("instances size %dx%d", cols, rows)
	}
}
