package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/wdm0006/arffutils/pkg/dataset"
)

// Feature holds the statistics of one numeric feature across one or two
// datasets.
type Feature struct {
	Name     string
	Datasets []string
	// Samples and Stats are keyed by subset, then dataset name.
	Samples map[string]map[string]Sample
	Stats   map[string]map[string]Summary
	// KS is the per-subset statistic between the two datasets of a
	// comparison; nil for a single dataset.
	KS map[string]float64
}

// NewFeature computes the statistics of the named feature in each of ds.
func NewFeature(name string, cfg Config, ds ...*dataset.Dataset) (*Feature, error) {
	if len(ds) < 1 || len(ds) > 2 {
		return nil, fmt.Errorf("report: feature %s needs 1 or 2 datasets, got %d", name, len(ds))
	}
	if len(ds) == 2 && ds[0].Name == ds[1].Name {
		return nil, fmt.Errorf("report: both datasets are named %q", ds[0].Name)
	}
	f := &Feature{
		Name:    name,
		Samples: make(map[string]map[string]Sample),
		Stats:   make(map[string]map[string]Summary),
	}
	for _, sub := range cfg.Subsets {
		f.Samples[sub] = make(map[string]Sample)
		f.Stats[sub] = make(map[string]Summary)
	}
	for _, d := range ds {
		f.Datasets = append(f.Datasets, d.Name)
		subs, err := subsets(d, name)
		if err != nil {
			return nil, err
		}
		for _, sub := range cfg.Subsets {
			f.Samples[sub][d.Name] = subs[sub]
			f.Stats[sub][d.Name] = Describe(subs[sub], cfg.Quantiles)
		}
		if all, ok := f.Stats[SubsetAll][d.Name]; ok {
			all.FvsTKS = KS(subs[SubsetFalse], subs[SubsetTrue])
			all.HasFvsTKS = true
			f.Stats[SubsetAll][d.Name] = all
		}
	}
	if len(ds) == 2 {
		f.KS = make(map[string]float64)
		for _, sub := range cfg.Subsets {
			f.KS[sub] = KS(f.Samples[sub][ds[0].Name], f.Samples[sub][ds[1].Name])
		}
	}
	return f, nil
}

// LogLog reports whether the PDF should be drawn log-log: when the "all"
// kurtosis of the first dataset exceeds the threshold.
func (f *Feature) LogLog(cfg Config) bool {
	s, ok := f.Stats[SubsetAll][f.Datasets[0]]
	return ok && s.Kurtosis > cfg.LogLogKurtosis
}

// subsets splits the feature column of d by target value.
func subsets(d *dataset.Dataset, name string) (map[string]Sample, error) {
	col, err := d.Frame.Floats(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	var all, falses, trues []float64
	for i := 0; i < col.Len(); i++ {
		v := col.Float(i)
		all = append(all, v)
		truth := false
		if d.Target != nil {
			truth, _ = d.Target.Get(i)
		}
		if truth {
			trues = append(trues, v)
		} else {
			falses = append(falses, v)
		}
	}
	return map[string]Sample{
		SubsetAll:   sortedSample(all),
		SubsetFalse: sortedSample(falses),
		SubsetTrue:  sortedSample(trues),
	}, nil
}

// Features lists the reportable numeric features of d, sorted by name.
func Features(d *dataset.Dataset, cfg Config) []string {
	var out []string
	for _, n := range d.NumericFeatures() {
		if !cfg.excluded(n) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// CommonFeatures lists the reportable numeric features present in both a
// and b, sorted by name.
func CommonFeatures(a, b *dataset.Dataset, cfg Config) []string {
	inB := make(map[string]bool)
	for _, n := range Features(b, cfg) {
		inB[n] = true
	}
	var out []string
	for _, n := range Features(a, cfg) {
		if inB[n] {
			out = append(out, n)
		}
	}
	return out
}

// byDrift orders features by descending "all" KS between the datasets.
// Undefined statistics sort last.
func byDrift(fs []*Feature) {
	key := func(f *Feature) float64 {
		v := f.KS[SubsetAll]
		if math.IsNaN(v) {
			return math.Inf(-1)
		}
		return v
	}
	sort.SliceStable(fs, func(i, j int) bool { return key(fs[i]) > key(fs[j]) })
}
