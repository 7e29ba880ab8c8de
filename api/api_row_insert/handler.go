package api_row_insert

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dracory/gridbase/shared/dberr"
	"github.com/dracory/gridbase/shared/driver"
	"github.com/dracory/gridbase/shared/rows"
	"github.com/dracory/gridbase/shared/types"
	"github.com/dracory/gridbase/shared/web"
)

// RowInsert handles row insertion requests
type RowInsert struct {
	config types.Config
}

// New creates a new RowInsert handler
func New(config types.Config) *RowInsert {
	return &RowInsert{config: config}
}

// Handle processes the insert row request. The submission is one field
// per column; auto-generated columns are assigned by the engine and
// ignored when submitted. On success the created row is echoed back as
// persisted, including generated values.
func (h *RowInsert) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.MethodNotAllowed(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		web.Fail(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	table := strings.TrimSpace(r.Form.Get("table"))
	if table == "" {
		web.Fail(w, http.StatusBadRequest, "table is required")
		return
	}
	if !driver.IsSafeIdent(table) {
		web.Fail(w, http.StatusBadRequest, "invalid table identifier")
		return
	}

	db, err := driver.Open(h.config.Driver, h.config.DSN)
	if err != nil {
		slog.Error("insert_row connect failed", "error", err)
		web.Fail(w, http.StatusInternalServerError, "failed to connect to database")
		return
	}
	defer driver.Close(db)

	submission := make(map[string]string, len(r.Form))
	for name := range r.Form {
		if name == "table" {
			continue
		}
		submission[name] = r.Form.Get(name)
	}

	mutator := &rows.Mutator{DB: db, Driver: h.config.Driver}
	row, err := mutator.Insert(table, submission)
	if err != nil {
		slog.Error("insert_row failed", "table", table, "error", err)
		web.Fail(w, statusFor(err), err.Error())
		return
	}

	web.OK(w, map[string]any{"row": row})
}

func statusFor(err error) int {
	var classified *dberr.Error
	switch {
	case errors.Is(err, rows.ErrSchemaUnavailable),
		errors.Is(err, rows.ErrFetchAfterInsert):
		return http.StatusInternalServerError
	case errors.Is(err, rows.ErrUnknownTable), errors.Is(err, rows.ErrNoData):
		return http.StatusBadRequest
	case errors.As(err, &classified):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
