package page_home

import (
	"fmt"
	"html/template"
	"net/http"

	hb "github.com/gouniverse/hb"

	"github.com/dracory/gridbase/shared/driver"
	"github.com/dracory/gridbase/shared/layout"
	"github.com/dracory/gridbase/shared/schema"
	"github.com/dracory/gridbase/shared/types"
	"github.com/dracory/gridbase/shared/urls"
)

// pageHomeController renders the table list landing page.
type pageHomeController struct {
	config types.Config
}

// New creates a new pageHomeController instance
func New(config types.Config) *pageHomeController {
	return &pageHomeController{config: config}
}

// ServeHTTP handles HTTP requests for the home page
func (h *pageHomeController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	db, err := driver.Open(h.config.Driver, h.config.DSN)
	if err != nil {
		http.Error(w, "Failed to connect to database: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer driver.Close(db)

	tables, err := schema.ListTables(db, h.config.Driver)
	if err != nil {
		http.Error(w, "Failed to list tables: "+err.Error(), http.StatusInternalServerError)
		return
	}

	html, err := Handle(h.config.BasePath, tables)
	if err != nil {
		http.Error(w, "Failed to render home page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, html)
}

// Handle renders the home page listing every table as a link to the
// table editor, and returns the full HTML.
func Handle(basePath string, tables []string) (template.HTML, error) {
	var main hb.TagInterface
	if len(tables) == 0 {
		main = hb.Paragraph().Class("gb-empty").Text("No tables found in the connected database.")
	} else {
		items := make([]hb.TagInterface, 0, len(tables))
		for _, table := range tables {
			items = append(items, hb.LI().Child(
				hb.A().Href(urls.PageTable(basePath, table)).Text(table),
			))
		}
		main = hb.UL().Class("gb-table-list").Children(items)
	}

	content := hb.Div().Children([]hb.TagInterface{
		hb.Heading2().Text("Tables"),
		main,
	})

	page := layout.RenderWith(layout.Options{
		Title:    "Tables",
		BasePath: basePath,
		MainHTML: content.ToHTML(),
	})
	return page, nil
}
