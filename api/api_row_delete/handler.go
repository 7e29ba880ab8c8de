package api_row_delete

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

// RowDelete handles row deletion requests
type RowDelete struct {
	config types.Config
}

// New creates a new RowDelete handler
func New(config types.Config) *RowDelete {
	return &RowDelete{config: config}
}

// Handle processes the delete row request. A delete that matches no
// row reports not found rather than success.
func (h *RowDelete) Handle(w http.ResponseWriter, r *http.Request) {
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
		slog.Error("delete_row connect failed", "error", err)
		web.Fail(w, http.StatusInternalServerError, "failed to connect to database")
		return
	}
	defer driver.Close(db)

	mutator := &rows.Mutator{DB: db, Driver: h.config.Driver}
	if err := mutator.Delete(table, id); err != nil {
		slog.Error("delete_row failed", "table", table, "id", id, "error", err)
		web.Fail(w, statusFor(err), err.Error())
		return
	}

	web.OK(w, nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, rows.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, rows.ErrSchemaUnavailable),
		errors.Is(err, rows.ErrNoPrimaryKey):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
