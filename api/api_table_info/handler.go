package api_table_info

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dracory/api"
	"github.com/dracory/gridbase/shared/driver"
	"github.com/dracory/gridbase/shared/schema"
	"github.com/dracory/gridbase/shared/types"
)

// TableInfo reports the column metadata of one table: name, type,
// nullability, key role, and auto-generation flag.
type TableInfo struct {
	config types.Config
}

// New creates a new TableInfo handler
func New(config types.Config) *TableInfo {
	return &TableInfo{config: config}
}

// Handle processes the request for table column metadata.
func (h *TableInfo) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	table := strings.TrimSpace(r.URL.Query().Get("table"))
	if table == "" {
		api.Respond(w, r, api.Error("table name is required"))
		return
	}
	if !driver.IsSafeIdent(table) {
		api.Respond(w, r, api.Error("invalid table name"))
		return
	}

	db, err := driver.Open(h.config.Driver, h.config.DSN)
	if err != nil {
		api.Respond(w, r, api.Error(fmt.Sprintf("failed to connect to database: %v", err)))
		return
	}
	defer driver.Close(db)

	columns, err := schema.Columns(db, h.config.Driver, table)
	if err != nil {
		api.Respond(w, r, api.Error(fmt.Sprintf("error getting table info: %v", err)))
		return
	}
	if len(columns) == 0 {
		api.Respond(w, r, api.Error("table has no columns"))
		return
	}

	primaryKey := ""
	for _, col := range columns {
		if col.PrimaryKey {
			primaryKey = col.Name
			break
		}
	}

	api.Respond(w, r, api.SuccessWithData("columns", map[string]any{
		"table":       table,
		"columns":     columns,
		"primary_key": primaryKey,
		"driver":      driver.Normalize(h.config.Driver),
	}))
}
