package templates

import (
	"embed"
	"html/template"
	"time"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"date": func(ts int64) string {
		return time.Unix(ts, 0).Format("Jan 2, 2006")
	},
}

// Parse builds the full template set for gin's SetHTMLTemplate.
func Parse() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.html"))
}
