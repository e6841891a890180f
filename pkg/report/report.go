// Package report computes per-feature descriptive statistics of one ARFF
// dataset, or distribution drift between two, and renders them as a
// self-contained HTML page or a console summary.
package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wdm0006/arffutils/pkg/dataset"
)

const (
	StatPctMissing = "Pct missing"
	StatMedian     = "Median"
	StatMin        = "Min"
	StatMax        = "Max"
	StatMean       = "Mean"
	StatStdev      = "Stdev"
	StatSkew       = "Skew"
	StatKurtosis   = "Kurtosis"
	StatFvsTKS     = "F vs T KS"
)

// Report is the analysis of one dataset or the comparison of two.
type Report struct {
	Config   Config
	Datasets []*dataset.Dataset
	Features []*Feature
}

// Analyze reports every numeric feature of d, sorted by name.
func Analyze(d *dataset.Dataset, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Report{Config: cfg, Datasets: []*dataset.Dataset{d}}
	for _, name := range Features(d, cfg) {
		f, err := NewFeature(name, cfg, d)
		if err != nil {
			return nil, err
		}
		r.Features = append(r.Features, f)
	}
	return r, nil
}

// Compare reports the numeric features common to a and b, largest "all"
// KS drift first.
func Compare(a, b *dataset.Dataset, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Report{Config: cfg, Datasets: []*dataset.Dataset{a, b}}
	for _, name := range CommonFeatures(a, b, cfg) {
		f, err := NewFeature(name, cfg, a, b)
		if err != nil {
			return nil, err
		}
		r.Features = append(r.Features, f)
	}
	byDrift(r.Features)
	return r, nil
}

// Comparison reports whether r compares two datasets.
func (r *Report) Comparison() bool { return len(r.Datasets) == 2 }

// Names lists the dataset names.
func (r *Report) Names() []string {
	out := make([]string, len(r.Datasets))
	for i, d := range r.Datasets {
		out[i] = d.Name
	}
	return out
}

// Table is a header row plus data rows. A row with a Link has its first
// value rendered as a link to that feature.
type Table struct {
	Header []string
	Rows   []Row
}

type Row struct {
	Link   string
	Values []any
}

// StatNames is the column order of the statistics tables.
func StatNames(cfg Config) []string {
	out := []string{StatPctMissing, StatMedian}
	for _, q := range cfg.Quantiles {
		out = append(out, percentLabel(q))
	}
	return append(out, StatMin, StatMax, StatMean, StatStdev, StatSkew, StatKurtosis, StatFvsTKS)
}

func statValues(s Summary) []any {
	out := []any{s.PctMissing, s.Median}
	for _, q := range s.Quantiles {
		out = append(out, q)
	}
	out = append(out, s.Min, s.Max, s.Mean, s.Stdev, s.Skew, s.Kurtosis)
	if s.HasFvsTKS {
		return append(out, s.FvsTKS)
	}
	return append(out, "N/A")
}

// CountsTable has one row per dataset with its all / false / true row counts.
func (r *Report) CountsTable() Table {
	t := Table{Header: []string{"Counts for dataset", SubsetAll, SubsetFalse, SubsetTrue}}
	for _, d := range r.Datasets {
		all, f, tr := d.Counts()
		t.Rows = append(t.Rows, Row{Values: []any{d.Name, all, f, tr}})
	}
	return t
}

// SummaryTable has one row per feature: the "all" statistics of a single
// dataset, or the per-subset KS statistics of a comparison.
func (r *Report) SummaryTable() Table {
	var t Table
	if r.Comparison() {
		t.Header = []string{"Feature"}
		for _, sub := range r.Config.Subsets {
			t.Header = append(t.Header, fmt.Sprintf("KS stat (%s)", sub))
		}
		for _, f := range r.Features {
			vals := []any{f.Name}
			for _, sub := range r.Config.Subsets {
				vals = append(vals, f.KS[sub])
			}
			t.Rows = append(t.Rows, Row{Link: f.Name, Values: vals})
		}
		return t
	}
	t.Header = append([]string{"Feature"}, StatNames(r.Config)...)
	name := r.Datasets[0].Name
	for _, f := range r.Features {
		s, ok := f.Stats[SubsetAll][name]
		if !ok {
			s = Describe(Sample{}, r.Config.Quantiles)
		}
		t.Rows = append(t.Rows, Row{Link: f.Name, Values: append([]any{f.Name}, statValues(s)...)})
	}
	return t
}

// FeatureTable has one row per subset and dataset, "train (all)" first.
func (r *Report) FeatureTable(f *Feature) Table {
	t := Table{Header: append([]string{"SETS"}, StatNames(r.Config)...)}
	for _, sub := range r.Config.Subsets {
		for _, name := range f.Datasets {
			label := fmt.Sprintf("%s (%s)", name, sub)
			t.Rows = append(t.Rows, Row{Values: append([]any{label}, statValues(f.Stats[sub][name])...)})
		}
	}
	return t
}

// FormatValue renders a table value: floats with two decimals, everything
// else as is.
func FormatValue(v any) string {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return "nan"
		}
		return strconv.FormatFloat(t, 'f', 2, 64)
	case int:
		return strconv.Itoa(t)
	case string:
		return t
	}
	return fmt.Sprint(v)
}

// Title is the heading of the summary section.
func (r *Report) Title() string {
	if r.Comparison() {
		return fmt.Sprintf("Summary statistics for datasets %s, %s", r.Datasets[0].Name, r.Datasets[1].Name)
	}
	return "Summary statistics for dataset " + r.Datasets[0].Name
}
