package report

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.html").
		Funcs(template.FuncMap{"gbp": FormatGBP}).
		ParseFS(templateFS, "templates/report.html"),
)

type htmlView struct {
	*Report
	Columns []string
}

// WriteHTML renders the report as a standalone HTML document.
func (r *Report) WriteHTML(w io.Writer) error {
	return reportTemplate.Execute(w, htmlView{Report: r, Columns: Columns})
}

func (r *Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := r.WriteHTML(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
