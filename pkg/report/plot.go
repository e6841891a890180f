package report

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// pdfPoints is the value-count histogram of s: one point per distinct value.
func pdfPoints(s Sample) plotter.XYs {
	var pts plotter.XYs
	for i := 0; i < len(s.Values); {
		j := i
		for j < len(s.Values) && s.Values[j] == s.Values[i] {
			j++
		}
		pts = append(pts, plotter.XY{X: s.Values[i], Y: float64(j - i)})
		i = j
	}
	return pts
}

// logLog takes the natural log of both axes, dropping points at or below
// zero.
func logLog(pts plotter.XYs) plotter.XYs {
	var out plotter.XYs
	for _, p := range pts {
		if p.X > 0 && p.Y > 0 {
			out = append(out, plotter.XY{X: math.Log(p.X), Y: math.Log(p.Y)})
		}
	}
	return out
}

// cdfPoints is the empirical CDF of s as a step line.
func cdfPoints(s Sample) plotter.XYs {
	n := float64(len(s.Values))
	var pts plotter.XYs
	for i := 0; i < len(s.Values); {
		j := i
		for j < len(s.Values) && s.Values[j] == s.Values[i] {
			j++
		}
		pts = append(pts,
			plotter.XY{X: s.Values[i], Y: float64(i) / n},
			plotter.XY{X: s.Values[i], Y: float64(j) / n})
		i = j
	}
	return pts
}

func newPlot(title string, titleColor color.Color) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Color = titleColor
	p.Add(plotter.NewGrid())
	p.Legend.Top = false
	p.Legend.Left = false
	return p
}

func addLines(p *plot.Plot, names []string, series []plotter.XYs) error {
	for i, pts := range series {
		if len(pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
		if len(names) > 1 {
			p.Legend.Add(names[i], l)
		}
	}
	return nil
}

// plotFeature draws one row per subset: the PDF (log-log when the feature
// looks heavy tailed) and the CDF, with shared x ranges per column.
func (r *Report) plotFeature(f *Feature) ([]byte, error) {
	subs := r.Config.Subsets
	loglog := f.LogLog(r.Config)
	plots := make([][]*plot.Plot, len(subs))
	for i, sub := range subs {
		var pdfs, cdfs []plotter.XYs
		for _, name := range f.Datasets {
			s := f.Samples[sub][name]
			pdf := pdfPoints(s)
			if loglog {
				pdf = logLog(pdf)
			}
			pdfs = append(pdfs, pdf)
			cdfs = append(cdfs, cdfPoints(s))
		}
		pdfTitle, pdfColor := "PDF ("+sub+")", color.Color(color.Black)
		if loglog {
			pdfTitle, pdfColor = "log-log PDF ("+sub+")", color.RGBA{R: 255, A: 255}
		}
		pp := newPlot(pdfTitle, pdfColor)
		if err := addLines(pp, f.Datasets, pdfs); err != nil {
			return nil, err
		}
		cp := newPlot("CDF ("+sub+")", color.Black)
		if err := addLines(cp, f.Datasets, cdfs); err != nil {
			return nil, err
		}
		plots[i] = []*plot.Plot{pp, cp}
	}
	for c := 0; c < 2; c++ {
		shareX(plots, c)
	}

	side := vg.Length(r.Config.GraphSize) * vg.Inch
	img := vgimg.New(2*side, vg.Length(len(subs))*side)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: len(subs), Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter, PadLeft: vg.Millimeter, PadRight: vg.Millimeter}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// shareX gives every plot in column c the union of their x ranges.
func shareX(plots [][]*plot.Plot, c int) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range plots {
		x := row[c].X
		if !math.IsInf(x.Min, 0) && x.Min < lo {
			lo = x.Min
		}
		if !math.IsInf(x.Max, 0) && x.Max > hi {
			hi = x.Max
		}
	}
	if lo > hi {
		return
	}
	for _, row := range plots {
		row[c].X.Min, row[c].X.Max = lo, hi
	}
}

// plotDataURL is the base64 PNG of a feature's plots as a data URL.
func (r *Report) plotDataURL(f *Feature) (string, error) {
	png, err := r.plotFeature(f)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
