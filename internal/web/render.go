package web

import (
	_ "embed"
	"html/template"
	"io"

	"lifeplan/internal/currency"
	"lifeplan/internal/form"
	"lifeplan/internal/recommendation"
)

//go:embed templates/page.html.tmpl
var pageTemplateSource string

var pageTemplate = template.Must(template.New("lifeplan").Funcs(template.FuncMap{
	"currency": currency.Format,
}).Parse(pageTemplateSource))

// Template returns the parsed page templates ("page" and "results").
func Template() *template.Template {
	return pageTemplate
}

// View is the data the page template renders.
type View struct {
	form.Snapshot
	RiskOptions []string
}

// NewView prepares snap for rendering. notice is the toast to show once,
// already taken from the form.
func NewView(snap form.Snapshot, notice string) View {
	snap.Notice = notice
	return View{
		Snapshot:    snap,
		RiskOptions: recommendation.RiskOptions,
	}
}

func RenderPage(w io.Writer, v View) error {
	return pageTemplate.ExecuteTemplate(w, "page", v)
}

// RenderResults writes one card per recommendation in the given order.
// Nothing is written for an empty list.
func RenderResults(w io.Writer, recs []recommendation.Recommendation) error {
	return pageTemplate.ExecuteTemplate(w, "results", recs)
}
