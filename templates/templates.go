// Package templates embeds the server-rendered HTML pages.
package templates

import (
	"embed"
	"html/template"
	"time"
)

//go:embed html/*.html
var files embed.FS

// Parse returns every page template; each is addressed by its file name, e.g. "index.html".
func Parse() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	}).ParseFS(files, "html/*.html"))
}
