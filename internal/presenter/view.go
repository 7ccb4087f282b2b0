// Package presenter turns the fetched article collection plus the reader's
// search term and page number into the slice of articles to display.
package presenter

import (
	"slices"
	"strings"
	"time"

	"github.com/bilgisen/gamenews/internal/models"
	"golang.org/x/text/cases"
)

// DateLayout is the pt-BR short date used on cards and matched by search.
const DateLayout = "02/01/2006"

// Options controls a single ComputeView call
type Options struct {
	SearchTerm    string
	Page          int
	ItemsPerPage  int
	SearchEnabled bool
	// Location used to render publication dates. Defaults to UTC.
	Location *time.Location
}

// Item is an article ready to be rendered as a card
type Item struct {
	models.Article
	ResolvedAuthor string `json:"resolvedAuthor"`
	PublishedDate  string `json:"publishedDate"`
}

// View is the display-ready page plus its pagination metadata
type View struct {
	Items       []Item `json:"items"`
	SearchTerm  string `json:"searchTerm"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalItems  int    `json:"totalItems"`
	HasPrev     bool   `json:"hasPrev"`
	HasNext     bool   `json:"hasNext"`
}

// ComputeView sorts articles newest first, filters them by the search term
// when search is enabled, and slices out the requested page. The page is not
// clamped: callers gate navigation on HasPrev and HasNext.
func ComputeView(articles []models.Article, opts Options) View {
	perPage := opts.ItemsPerPage
	if perPage <= 0 {
		perPage = DefaultItemsPerPage
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	sorted := SortByPublished(articles)

	filtered := sorted
	if opts.SearchEnabled {
		filtered = Filter(sorted, opts.SearchTerm, loc)
	}

	total := len(filtered)
	start, end := pageBounds(opts.Page, perPage, total)

	items := make([]Item, 0, end-start)
	for _, a := range filtered[start:end] {
		items = append(items, Item{
			Article:        a,
			ResolvedAuthor: a.ResolvedAuthor(),
			PublishedDate:  FormatDate(a.PublishedAt, loc),
		})
	}

	return View{
		Items:       items,
		SearchTerm:  opts.SearchTerm,
		CurrentPage: opts.Page,
		TotalPages:  TotalPages(total, perPage),
		TotalItems:  total,
		HasPrev:     opts.Page > 1,
		HasNext:     hasNextPage(opts.Page, perPage, total),
	}
}

// SortByPublished returns a copy of articles ordered by publication time,
// most recent first. Articles published at the same instant keep their order.
func SortByPublished(articles []models.Article) []models.Article {
	sorted := slices.Clone(articles)
	slices.SortStableFunc(sorted, func(a, b models.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return sorted
}

// Filter keeps the articles whose title, author or localized publication
// date contain term, ignoring case. An empty term keeps everything.
func Filter(articles []models.Article, term string, loc *time.Location) []models.Article {
	if term == "" {
		return articles
	}

	folder := cases.Fold()
	needle := folder.String(term)

	var out []models.Article
	for _, a := range articles {
		switch {
		case strings.Contains(folder.String(a.Title), needle),
			strings.Contains(folder.String(a.Author), needle),
			strings.Contains(FormatDate(a.PublishedAt, loc), needle):
			out = append(out, a)
		}
	}
	return out
}

// FormatDate renders t as a pt-BR short date in loc
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}
