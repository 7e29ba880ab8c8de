package api_rows_browse

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/gridbase/shared/driver"
	"github.com/dracory/gridbase/shared/rows"
	"github.com/dracory/gridbase/shared/schema"
	"github.com/dracory/gridbase/shared/types"
)

// RowsBrowse returns every row of a table as ordered field -> value
// mappings, used for the initial render of the table page.
type RowsBrowse struct {
	config types.Config
}

// New creates a new RowsBrowse handler
func New(config types.Config) *RowsBrowse {
	return &RowsBrowse{config: config}
}

// Handle processes the request
func (h *RowsBrowse) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	table := strings.TrimSpace(r.URL.Query().Get("table"))
	if table == "" {
		api.Respond(w, r, api.Error("table is required"))
		return
	}
	if !driver.IsSafeIdent(table) {
		api.Respond(w, r, api.Error("invalid table identifier"))
		return
	}

	db, err := driver.Open(h.config.Driver, h.config.DSN)
	if err != nil {
		api.Respond(w, r, api.Error(fmt.Sprintf("failed to connect to database: %v", err)))
		return
	}
	defer driver.Close(db)

	columns, err := schema.Columns(db, h.config.Driver, table)
	if err != nil || len(columns) == 0 {
		api.Respond(w, r, api.Error("unknown table"))
		return
	}

	reader := &rows.Reader{DB: db, Driver: h.config.Driver}
	result, err := reader.FetchAll(table)
	if err != nil {
		api.Respond(w, r, api.Error(fmt.Sprintf("error fetching rows: %v", err)))
		return
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	api.Respond(w, r, api.SuccessWithData("rows", map[string]any{
		"table":   table,
		"columns": names,
		"rows":    result,
		"count":   len(result),
	}))
}
