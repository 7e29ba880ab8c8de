// Package gridbase provides a schema-driven table browser and editor
// for Go web applications. It introspects column metadata (name, type,
// nullability, key role, auto-generation) at request time and derives
// listing, insert, update, and delete behavior from it, for MySQL,
// PostgreSQL, SQLite, and SQL Server databases.
package gridbase

import (
	"net/http"

	"github.com/dracory/gridbase/api/api_row_delete"
	"github.com/dracory/gridbase/api/api_row_insert"
	"github.com/dracory/gridbase/api/api_row_update"
	"github.com/dracory/gridbase/api/api_row_view"
	"github.com/dracory/gridbase/api/api_rows_browse"
	"github.com/dracory/gridbase/api/api_table_info"
	"github.com/dracory/gridbase/api/api_tables_list"
	"github.com/dracory/gridbase/pages/page_home"
	"github.com/dracory/gridbase/pages/page_table"
	"github.com/dracory/gridbase/shared/constants"
	"github.com/dracory/gridbase/shared/types"
	"github.com/dracory/gridbase/shared/urls"
)

// Gridbase represents the main application instance
type Gridbase struct {
	config types.Config
}

// New creates a new Gridbase instance with the given configuration.
// The configuration should be loaded using LoadConfig() from config.go.
func New(cfg types.Config, options ...func(*types.Config)) *Gridbase {
	for _, option := range options {
		option(&cfg)
	}
	if cfg.ActionParam == "" {
		cfg.ActionParam = "action"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/"
	}
	return &Gridbase{config: cfg}
}

// Handler returns an http.Handler that serves the Gridbase UI and API
func (g *Gridbase) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(g.config.BasePath, g.handleRequest)
	return g.middleware(mux)
}

// handleRequest routes requests to the appropriate handler
func (g *Gridbase) handleRequest(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get(g.config.ActionParam)

	switch action {
	// API handlers
	case constants.ActionApiTablesList:
		api_tables_list.New(g.config).Handle(w, r)

	case constants.ActionApiTableInfo:
		api_table_info.New(g.config).Handle(w, r)

	case constants.ActionApiRowsBrowse:
		api_rows_browse.New(g.config).Handle(w, r)

	case constants.ActionApiRowView:
		api_row_view.New(g.config).Handle(w, r)

	case constants.ActionApiRowInsert:
		api_row_insert.New(g.config).Handle(w, r)

	case constants.ActionApiRowUpdate:
		api_row_update.New(g.config).Handle(w, r)

	case constants.ActionApiRowDelete:
		api_row_delete.New(g.config).Handle(w, r)

	// Page handlers
	case constants.ActionPageTable:
		page_table.New(g.config).ServeHTTP(w, r)

	case constants.ActionPageHome, "":
		page_home.New(g.config).ServeHTTP(w, r)

	// Default to the home page
	default:
		http.Redirect(w, r, urls.Home(g.config.BasePath), http.StatusFound)
	}
}

// middleware applies common middleware to all handlers
func (g *Gridbase) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:;")

		next.ServeHTTP(w, r)
	})
}
