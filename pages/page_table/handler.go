package page_table

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	hb "github.com/gouniverse/hb"

	"github.com/dracory/gridbase/shared"
	"github.com/dracory/gridbase/shared/driver"
	"github.com/dracory/gridbase/shared/layout"
	"github.com/dracory/gridbase/shared/rows"
	"github.com/dracory/gridbase/shared/schema"
	"github.com/dracory/gridbase/shared/types"
	"github.com/dracory/gridbase/shared/urls"
	"github.com/dracory/gridbase/shared/widths"
)

// DefaultTitle is the default page title
const DefaultTitle = "Table Editor"

// pageFont is the font context assumed for initial input sizing. The
// page script re-measures with real DOM metrics once loaded.
var pageFont = widths.Font{Family: "system-ui", Size: 14}

//go:embed script.js styles.css
var embeddedFS embed.FS

// pageTableController renders the browse/edit page for one table.
type pageTableController struct {
	config types.Config
}

// New creates a new pageTableController instance
func New(config types.Config) *pageTableController {
	return &pageTableController{config: config}
}

// ServeHTTP handles HTTP requests for the table page
func (h *pageTableController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tableName := r.URL.Query().Get("table")
	if tableName == "" || !driver.IsSafeIdent(tableName) {
		http.Redirect(w, r, urls.Home(h.config.BasePath), http.StatusFound)
		return
	}

	db, err := driver.Open(h.config.Driver, h.config.DSN)
	if err != nil {
		http.Error(w, "Failed to connect to database: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer driver.Close(db)

	columns, err := schema.Columns(db, h.config.Driver, tableName)
	if err != nil {
		http.Error(w, "Failed to inspect table: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(columns) == 0 {
		http.Error(w, "Unknown table: "+tableName, http.StatusNotFound)
		return
	}

	primaryKey := ""
	for _, col := range columns {
		if col.PrimaryKey {
			primaryKey = col.Name
			break
		}
	}

	reader := &rows.Reader{DB: db, Driver: h.config.Driver}
	tableRows, err := reader.FetchAll(tableName)
	if err != nil {
		http.Error(w, "Failed to fetch rows: "+err.Error(), http.StatusInternalServerError)
		return
	}

	html, err := Handle(h.config.BasePath, tableName, columns, primaryKey, tableRows)
	if err != nil {
		http.Error(w, "Failed to render table page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, html)
}

// Handle renders the table editor page and returns the full HTML.
func Handle(
	basePath string,
	tableName string,
	columns []schema.Column,
	primaryKey string,
	tableRows []*rows.Row,
) (template.HTML, error) {
	pageCSS, err := shared.EmbeddedFileToString(embeddedFS, "styles.css")
	if err != nil {
		return "", err
	}
	pageJS, err := shared.EmbeddedFileToString(embeddedFS, "script.js")
	if err != nil {
		return "", err
	}

	// Initial input widths come from the server-side memo; the page
	// script keeps them synchronized from then on.
	memo := widths.NewMemo(nil)
	colWidths := memo.Refresh(buildGrid(columns, tableRows))

	content := hb.Div().Children([]hb.TagInterface{
		hb.Heading2().Text(tableName),
		hb.Div().ID("error-message").Class("gb-error"),
		renderTable(tableName, columns, primaryKey, tableRows, colWidths),
	})

	appConfig := map[string]any{
		"table":      tableName,
		"primaryKey": primaryKey,
		"columns":    columns,
		"endpoints": map[string]string{
			"insert": urls.RowInsert(basePath),
			"update": urls.RowUpdate(basePath),
			"delete": urls.RowDelete(basePath),
		},
	}

	extraHead := []hb.TagInterface{
		hb.Style(pageCSS),
	}
	extraBody := []hb.TagInterface{
		hb.Script("window.appConfig = " + string(toJSON(appConfig)) + ";"),
		hb.Script(pageJS),
	}

	page := layout.RenderWith(layout.Options{
		Title:        tableName + " - " + DefaultTitle,
		BasePath:     basePath,
		MainHTML:     content.ToHTML(),
		ExtraHead:    extraHead,
		ExtraBodyEnd: extraBody,
	})
	return page, nil
}

// renderTable builds the editable data table: one row per persisted
// row with display spans plus hidden edit inputs, and a trailing
// add-row for inserts.
func renderTable(
	tableName string,
	columns []schema.Column,
	primaryKey string,
	tableRows []*rows.Row,
	colWidths []float64,
) hb.TagInterface {
	headCells := make([]hb.TagInterface, 0, len(columns)+1)
	for _, col := range columns {
		headCells = append(headCells, hb.TH().Text(col.Name))
	}
	headCells = append(headCells, hb.TH().Class("action-cell").Text("Actions"))

	bodyRows := make([]hb.TagInterface, 0, len(tableRows)+1)
	for _, row := range tableRows {
		tr := hb.TR().Attr("data-id", displayValue(row.Get(primaryKey)))
		for i, col := range columns {
			value := displayValue(row.Get(col.Name))
			td := hb.TD().Attr("data-field", col.Name)
			td.Child(hb.Span().Class("display-text").Text(value))
			if !col.AutoGenerated {
				td.Child(hb.Input().
					Class("edit-input").
					Attr("type", "text").
					Attr("value", value).
					Attr("style", inputWidth(colWidths, i)))
			}
			tr.Child(td)
		}
		tr.Child(actionCell(tableName, displayValue(row.Get(primaryKey))))
		bodyRows = append(bodyRows, tr)
	}
	bodyRows = append(bodyRows, addRow(columns, colWidths))

	return hb.Table().ID("data-table").Children([]hb.TagInterface{
		hb.Thead().Child(hb.TR().Children(headCells)),
		hb.Tbody().Children(bodyRows),
	})
}

func actionCell(tableName, id string) hb.TagInterface {
	return hb.TD().Class("action-cell").Children([]hb.TagInterface{
		hb.Button().Class("edit-btn").Text("Edit"),
		hb.Button().Class("save-btn").Attr("style", "display:none;").Text("Save"),
		hb.Button().Class("cancel-btn").Attr("style", "display:none;").Text("Cancel"),
		hb.Button().Class("delete-btn").Attr("data-id", id).Text("Delete"),
	})
}

// addRow renders the insert row: one input per editable column.
// Auto-generated columns are assigned by the engine and render as a
// muted marker.
func addRow(columns []schema.Column, colWidths []float64) hb.TagInterface {
	tr := hb.TR().Class("add-row")
	for i, col := range columns {
		td := hb.TD().Attr("data-field", col.Name)
		if col.AutoGenerated {
			td.Child(hb.Span().Class("auto-marker").Text("auto"))
		} else {
			td.Child(hb.Input().
				Class("add-input").
				Attr("type", "text").
				Attr("data-field", col.Name).
				Attr("placeholder", col.Name).
				Attr("style", inputWidth(colWidths, i)))
		}
		tr.Child(td)
	}
	tr.Child(hb.TD().Class("action-cell").Child(
		hb.Button().Class("add-btn").Text("Add"),
	))
	return tr
}

func inputWidth(colWidths []float64, column int) string {
	width := 60.0
	if column < len(colWidths) && colWidths[column] > width {
		width = colWidths[column]
	}
	return fmt.Sprintf("width: %.0fpx;", width)
}

func buildGrid(columns []schema.Column, tableRows []*rows.Row) *widths.Grid {
	grid := &widths.Grid{Font: pageFont}
	for _, row := range tableRows {
		cells := make([]widths.Cell, len(columns))
		for i, col := range columns {
			cells[i] = widths.Cell{Display: displayValue(row.Get(col.Name))}
		}
		grid.Rows = append(grid.Rows, &widths.Row{Cells: cells})
	}
	return grid
}

func displayValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// toJSON converts Go values to JSON for inline scripts.
func toJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}
