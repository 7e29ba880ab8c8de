package api_row_view

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

// RowView fetches a single row by the table's primary key.
type RowView struct {
	config types.Config
}

// New creates a new RowView handler
func New(config types.Config) *RowView {
	return &RowView{config: config}
}

// Handle processes the request
func (h *RowView) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	table := strings.TrimSpace(r.URL.Query().Get("table"))
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if table == "" || id == "" {
		api.Respond(w, r, api.Error("table and id are required"))
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

	primaryKey, err := schema.PrimaryKey(db, h.config.Driver, table)
	if err != nil {
		api.Respond(w, r, api.Error(fmt.Sprintf("error resolving primary key: %v", err)))
		return
	}
	if primaryKey == "" {
		api.Respond(w, r, api.Error("primary key not found"))
		return
	}

	reader := &rows.Reader{DB: db, Driver: h.config.Driver}
	row, err := reader.FetchByKey(table, primaryKey, id)
	if err != nil {
		api.Respond(w, r, api.Error(fmt.Sprintf("error fetching row: %v", err)))
		return
	}
	if row == nil {
		api.Respond(w, r, api.Error("row not found"))
		return
	}

	api.Respond(w, r, api.SuccessWithData("row", map[string]any{
		"table": table,
		"row":   row,
	}))
}
