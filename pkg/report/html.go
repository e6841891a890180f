package report

import (
	"html/template"
	"io"
)

var page = template.Must(template.New("report").Funcs(template.FuncMap{
	"fmtValue": FormatValue,
}).Parse(`<html><head><style>body { font-family: Sans-Serif; }</style></head><body>
<a id="summary"></a>
<h3>{{.Title}}</h3>
{{template "linked" .Counts}}{{template "linked" .Summary}}<hr>

{{range .Features}}
<a id="feature_{{.Name}}"></a>
<h3>{{.Name}}</h3>
{{template "linked" .Table}}<hr><img src="{{.Image}}" alt="graph"><hr><a href="#summary">Back to summary</a>

{{end}}</body></html>
{{define "linked"}}<table border="1"><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}<tr>{{$link := .Link}}{{range $i, $v := .Values}}<td>{{if and (eq $i 0) $link}}<a href="#feature_{{$link}}">{{fmtValue $v}}</a>{{else}}{{fmtValue $v}}{{end}}</td>{{end}}</tr>{{end}}</table>{{end}}`))

type pageFeature struct {
	Name  string
	Table Table
	Image template.URL
}

type pageData struct {
	Title    string
	Counts   Table
	Summary  Table
	Features []pageFeature
}

// WriteHTML renders r as a self-contained HTML page with embedded PNG plots.
func (r *Report) WriteHTML(w io.Writer) error {
	data := pageData{Title: r.Title(), Counts: r.CountsTable(), Summary: r.SummaryTable()}
	for _, f := range r.Features {
		url, err := r.plotDataURL(f)
		if err != nil {
			return err
		}
		data.Features = append(data.Features, pageFeature{
			Name:  f.Name,
			Table: r.FeatureTable(f),
			Image: template.URL(url),
		})
	}
	return page.Execute(w, data)
}
