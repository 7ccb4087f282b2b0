// Package export pre-renders every page of the news list into a directory,
// the way the page would be generated at build time.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/bilgisen/gamenews/internal/models"
	"github.com/bilgisen/gamenews/internal/presenter"
	"github.com/bilgisen/gamenews/internal/render"
	"github.com/bilgisen/gamenews/internal/storage"
)

// ArticlesFile holds the collection the pages were rendered from
const ArticlesFile = "articles.json"

type Exporter struct {
	store        *storage.Storage
	renderer     *render.Renderer
	itemsPerPage int
	location     *time.Location
}

func NewExporter(store *storage.Storage, renderer *render.Renderer, itemsPerPage int, loc *time.Location) *Exporter {
	return &Exporter{
		store:        store,
		renderer:     renderer,
		itemsPerPage: itemsPerPage,
		location:     loc,
	}
}

// Export replaces the output directory with one HTML file per page and the
// sorted article collection. An empty collection still produces index.html.
// Search is disabled: a pre-rendered page cannot filter.
func (e *Exporter) Export(ctx context.Context, articles []models.Article) ([]string, error) {
	if err := e.store.Reset(ctx); err != nil {
		return nil, err
	}

	sorted := presenter.SortByPublished(articles)
	if sorted == nil {
		sorted = []models.Article{}
	}
	if err := e.store.WriteJSON(ctx, ArticlesFile, sorted); err != nil {
		return nil, err
	}
	files := []string{ArticlesFile}

	state := presenter.NewState()
	for {
		opts := state.Options(e.itemsPerPage, false)
		opts.Location = e.location
		view := presenter.ComputeView(sorted, opts)

		var buf bytes.Buffer
		if err := e.renderer.Render(&buf, view, state, render.StaticLinks{}, false); err != nil {
			return files, err
		}

		name := render.StaticFileName(state.Page)
		if err := e.store.WriteFile(ctx, name, buf.Bytes()); err != nil {
			return files, fmt.Errorf("failed to write page %d: %w", state.Page, err)
		}
		files = append(files, name)

		next := state.Next(view)
		if next == state {
			return files, nil
		}
		state = next
	}
}
