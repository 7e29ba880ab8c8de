// Package urls builds action URLs for the single-endpoint router.
package urls

import (
	neturl "net/url"

	"github.com/dracory/gridbase/shared/constants"
	"github.com/samber/lo"
)

const actionParam = "action"

// Home builds the URL of the home page (table list).
// Signature: Home(basePath, params)
func Home(basePath string, params ...map[string]string) string {
	return Build(basePath, constants.ActionPageHome, params...)
}

// PageTable builds the URL of the table browse/edit page.
// Signature: PageTable(basePath, table, params)
func PageTable(basePath, table string, params ...map[string]string) string {
	p := lo.FirstOr(params, map[string]string{})
	p["table"] = table
	return Build(basePath, constants.ActionPageTable, p)
}

// TablesList builds the URL for listing tables.
func TablesList(basePath string, params ...map[string]string) string {
	return Build(basePath, constants.ActionApiTablesList, params...)
}

// TableInfo builds the URL for table column metadata.
func TableInfo(basePath string, params ...map[string]string) string {
	return Build(basePath, constants.ActionApiTableInfo, params...)
}

// RowsBrowse builds the URL for browsing table rows.
func RowsBrowse(basePath, table string, params ...map[string]string) string {
	p := lo.FirstOr(params, map[string]string{})
	p["table"] = table
	return Build(basePath, constants.ActionApiRowsBrowse, p)
}

// RowView builds the URL for fetching a single row.
func RowView(basePath string, params ...map[string]string) string {
	return Build(basePath, constants.ActionApiRowView, params...)
}

// RowInsert builds the URL for row insertion POSTs.
func RowInsert(basePath string, params ...map[string]string) string {
	return Build(basePath, constants.ActionApiRowInsert, params...)
}

// RowUpdate builds the URL for row update POSTs.
func RowUpdate(basePath string, params ...map[string]string) string {
	return Build(basePath, constants.ActionApiRowUpdate, params...)
}

// RowDelete builds the URL for row delete POSTs.
func RowDelete(basePath string, params ...map[string]string) string {
	return Build(basePath, constants.ActionApiRowDelete, params...)
}

// Build assembles basePath?action=<action>&<params>.
func Build(basePath, action string, params ...map[string]string) string {
	q := neturl.Values{}
	q.Set(actionParam, action)
	for key, value := range lo.FirstOr(params, map[string]string{}) {
		q.Set(key, value)
	}
	return basePath + "?" + q.Encode()
}
