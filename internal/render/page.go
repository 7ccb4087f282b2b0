// Package render turns a presenter.View into the HTML news page.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/bilgisen/gamenews/internal/presenter"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Links builds the navigation targets of the page
type Links interface {
	PageURL(state presenter.State) string
	SearchAction() string
}

// ServerLinks points navigation back at a server path with q and page
// query parameters.
type ServerLinks struct {
	Path string
}

func (l ServerLinks) PageURL(state presenter.State) string {
	q := url.Values{}
	if state.SearchTerm != "" {
		q.Set("q", state.SearchTerm)
	}
	if state.Page > 1 {
		q.Set("page", strconv.Itoa(state.Page))
	}
	if len(q) == 0 {
		return l.Path
	}
	return l.Path + "?" + q.Encode()
}

func (l ServerLinks) SearchAction() string {
	return l.Path
}

// StaticLinks points navigation at pre-rendered files
type StaticLinks struct{}

func (StaticLinks) PageURL(state presenter.State) string {
	return StaticFileName(state.Page)
}

func (StaticLinks) SearchAction() string {
	return ""
}

// StaticFileName is the file a static export writes page to
func StaticFileName(page int) string {
	if page <= 1 {
		return "index.html"
	}
	return fmt.Sprintf("page-%d.html", page)
}

type pageData struct {
	Heading       string
	SearchEnabled bool
	SearchAction  string
	View          presenter.View
	PageNumber    int
	PrevURL       string
	NextURL       string
}

// pageNumber is the page shown in the indicator. A view without pages
// reads "0 de 0".
func pageNumber(v presenter.View) int {
	if v.TotalPages == 0 {
		return 0
	}
	return v.CurrentPage
}

// Renderer renders the news page template
type Renderer struct {
	tmpl    *template.Template
	heading string
}

// New parses the embedded template. heading is the page title.
func New(heading string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl, heading: heading}, nil
}

// Heading returns the default page title for a game
func Heading(game string) string {
	return "Notícias de " + game
}

// Render writes the page for view. The previous and next links are derived
// from state through the same transitions the controls perform.
func (r *Renderer) Render(w io.Writer, view presenter.View, state presenter.State, links Links, searchEnabled bool) error {
	data := pageData{
		Heading:       r.heading,
		SearchEnabled: searchEnabled,
		SearchAction:  links.SearchAction(),
		View:          view,
		PageNumber:    pageNumber(view),
		PrevURL:       links.PageURL(state.Prev()),
		NextURL:       links.PageURL(state.Next(view)),
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
