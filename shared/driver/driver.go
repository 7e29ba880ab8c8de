// Package driver opens database connections and centralizes the
// identifier handling shared by every handler: driver name
// normalization, identifier safety checks, and dialect quoting.
package driver

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// Open opens a database connection using the specified driver and DSN.
func Open(driverName, dsn string) (*gorm.DB, error) {
	switch Normalize(driverName) {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "sqlserver":
		return gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driverName)
	}
}

// Close releases the underlying connection of a database handle opened
// with Open. Errors on close are ignored; the handle is per request.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
