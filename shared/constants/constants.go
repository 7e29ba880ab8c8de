package constants

// Action names for the single-endpoint router. Keep in sync with page scripts.
const (
	ActionPageHome  = "page_home"
	ActionPageTable = "page_table"

	ActionApiTablesList = "api_tables_list"
	ActionApiTableInfo  = "api_table_info"
	ActionApiRowsBrowse = "api_rows_browse"
	ActionApiRowView    = "api_row_view"
	ActionApiRowInsert  = "api_row_insert"
	ActionApiRowUpdate  = "api_row_update"
	ActionApiRowDelete  = "api_row_delete"
)

// Supported database drivers
const (
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
)
