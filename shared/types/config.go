package types

// Config contains the configuration for web handlers
type Config struct {
	// HTTPPort is the port the standalone server listens on
	HTTPPort int
	// BasePath is the base URL path for the application
	BasePath string
	// ActionParam is the query parameter used for actions
	ActionParam string
	// Driver is the database driver name (mysql, postgres, sqlite, sqlserver)
	Driver string
	// DSN is the data source name of the configured database
	DSN string
}
