package report

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// WriteText prints the counts and summary tables, then an ASCII sketch of
// each feature's "all" CDF in the first dataset.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, r.Title()); err != nil {
		return err
	}
	renderTable(w, r.CountsTable())
	renderTable(w, r.SummaryTable())
	for _, f := range r.Features {
		s := f.Samples[SubsetAll][f.Datasets[0]]
		curve := cdfCurve(s, r.Config.TextWidth)
		if len(curve) == 0 {
			continue
		}
		graph := asciigraph.Plot(curve,
			asciigraph.Height(8),
			asciigraph.Width(r.Config.TextWidth),
			asciigraph.Caption(fmt.Sprintf("%s CDF (%s, %s .. %s)", f.Name, f.Datasets[0],
				FormatValue(s.Values[0]), FormatValue(s.Values[len(s.Values)-1]))))
		if _, err := fmt.Fprintf(w, "\n%s\n", graph); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, t Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Header)
	tw.SetAutoFormatHeaders(false)
	for _, row := range t.Rows {
		cells := make([]string, len(row.Values))
		for i, v := range row.Values {
			cells[i] = FormatValue(v)
		}
		tw.Append(cells)
	}
	tw.Render()
}

// cdfCurve samples the empirical CDF of s at width evenly spaced points
// between its smallest and largest value.
func cdfCurve(s Sample, width int) []float64 {
	n := len(s.Values)
	if n == 0 || width < 2 {
		return nil
	}
	lo, hi := s.Values[0], s.Values[n-1]
	out := make([]float64, width)
	j := 0
	for i := range out {
		x := lo + (hi-lo)*float64(i)/float64(width-1)
		for j < n && s.Values[j] <= x {
			j++
		}
		out[i] = float64(j) / float64(n)
	}
	out[width-1] = 1
	return out
}
