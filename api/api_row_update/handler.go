package api_row_update

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dracory/gridbase/shared/driver"
	"github.com/dracory/gridbase/shared/rows"
	"github.com/dracory/gridbase/shared/types"
	"github.com/dracory/gridbase/shared/web"
)

// RowUpdate handles row update requests
type RowUpdate struct {
	config types.Config
}

// New creates a new RowUpdate handler
func New(config types.Config) *RowUpdate {
	return &RowUpdate{config: config}
}

// Handle processes the update row request. The row is addressed by the
// table's primary key; the primary key column itself is never updated.
func (h *RowUpdate) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.MethodNotAllowed(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		web.Fail(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	table := strings.TrimSpace(r.Form.Get("table"))
	id := strings.TrimSpace(r.Form.Get("id"))
	if table == "" || id == "" {
		web.Fail(w, http.StatusBadRequest, "table and id are required")
		return
	}
	if !driver.IsSafeIdent(table) {
		web.Fail(w, http.StatusBadRequest, "invalid table identifier")
		return
	}

	db, err := driver.Open(h.config.Driver, h.config.DSN)
	if err != nil {
		slog.Error("update_row connect failed", "error", err)
		web.Fail(w, http.StatusInternalServerError, "failed to connect to database")
		return
	}
	defer driver.Close(db)

	submission := make(map[string]string, len(r.Form))
	for name := range r.Form {
		if name == "table" || name == "id" {
			continue
		}
		submission[name] = r.Form.Get(name)
	}

	mutator := &rows.Mutator{DB: db, Driver: h.config.Driver}
	if err := mutator.Update(table, id, submission); err != nil {
		slog.Error("update_row failed", "table", table, "id", id, "error", err)
		web.Fail(w, statusFor(err), err.Error())
		return
	}

	web.OK(w, nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, rows.ErrSchemaUnavailable),
		errors.Is(err, rows.ErrNoPrimaryKey),
		errors.Is(err, rows.ErrUpdateFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
