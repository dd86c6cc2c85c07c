// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/pageza/mealfinder/backend/internal/view"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageData renders the search page.
type PageData struct {
	Title     string
	Skeletons []view.Skeleton
}

// ResultsData renders the results container. Exactly one of Message and
// Cards is shown.
type ResultsData struct {
	Seq     uint64
	Stale   bool
	Term    string
	Heading string
	Message string
	Cards   []view.Card
}

// Templates parses the embedded templates. The named templates are
// "index", "results", "card", "skeletons", "placeholder" and "detail".
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.gohtml"))
}

// Static serves the embedded assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
