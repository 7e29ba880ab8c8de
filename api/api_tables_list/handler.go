package api_tables_list

import (
	"fmt"
	"net/http"

	"github.com/dracory/api"
	"github.com/dracory/gridbase/shared/driver"
	"github.com/dracory/gridbase/shared/schema"
	"github.com/dracory/gridbase/shared/types"
)

// TablesList lists the tables of the configured database.
type TablesList struct {
	config types.Config
}

// New creates a new TablesList handler
func New(config types.Config) *TablesList {
	return &TablesList{config: config}
}

// Handle processes the request to list database tables. The catalog is
// queried on every request; nothing is cached.
func (h *TablesList) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Respond(w, r, api.Error("method not allowed"))
		return
	}

	db, err := driver.Open(h.config.Driver, h.config.DSN)
	if err != nil {
		api.Respond(w, r, api.Error(fmt.Sprintf("failed to connect to database: %v", err)))
		return
	}
	defer driver.Close(db)

	tables, err := schema.ListTables(db, h.config.Driver)
	if err != nil {
		api.Respond(w, r, api.Error(fmt.Sprintf("error listing tables: %v", err)))
		return
	}

	api.Respond(w, r, api.SuccessWithData("tables_listed", map[string]any{
		"tables": tables,
		"count":  len(tables),
		"driver": driver.Normalize(h.config.Driver),
	}))
}
