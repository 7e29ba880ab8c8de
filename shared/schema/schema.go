// Package schema inspects table metadata for the connected database.
// It supports multiple database backends including PostgreSQL, MySQL,
// SQLite, and SQL Server. All queries are read-only catalog lookups;
// nothing is cached, so results always reflect the current schema.
package schema

import (
	"fmt"
	"strings"

	"github.com/dracory/gridbase/shared/driver"
	"gorm.io/gorm"
)

// Column describes one table column as reported by the engine's catalog.
type Column struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Nullable      bool   `json:"nullable"`
	PrimaryKey    bool   `json:"primary_key"`
	AutoGenerated bool   `json:"auto_generated"`
}

// ListTables returns the names of all user tables in the connected database.
func ListTables(db *gorm.DB, driverName string) ([]string, error) {
	var query string
	switch driver.Normalize(driverName) {
	case "postgres":
		query = `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_type = 'BASE TABLE'
			ORDER BY table_name`
	case "mysql":
		query = `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_schema = DATABASE()
			AND table_type = 'BASE TABLE'
			ORDER BY table_name`
	case "sqlite":
		query = `
			SELECT name
			FROM sqlite_master
			WHERE type = 'table'
			AND name NOT LIKE 'sqlite_%'
			ORDER BY name`
	case "sqlserver":
		query = `
			SELECT table_name
			FROM information_schema.tables
			WHERE table_type = 'BASE TABLE'
			AND table_catalog = DB_NAME()
			ORDER BY table_name`
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driverName)
	}

	rows, err := db.Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return tables, nil
}

// Columns returns the column descriptors for a table in catalog order.
// A table that is absent, or genuinely columnless, yields an empty slice.
func Columns(db *gorm.DB, driverName, table string) ([]Column, error) {
	if !driver.IsSafeIdent(table) {
		return nil, fmt.Errorf("invalid table identifier: %q", table)
	}

	switch driver.Normalize(driverName) {
	case "mysql":
		return mysqlColumns(db, table)
	case "postgres":
		return postgresColumns(db, table)
	case "sqlite":
		return sqliteColumns(db, table)
	case "sqlserver":
		return sqlserverColumns(db, table)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driverName)
	}
}

// PrimaryKey returns the name of the first column flagged as primary,
// or "" when the table has no primary key.
func PrimaryKey(db *gorm.DB, driverName, table string) (string, error) {
	columns, err := Columns(db, driverName, table)
	if err != nil {
		return "", err
	}
	for _, col := range columns {
		if col.PrimaryKey {
			return col.Name, nil
		}
	}
	return "", nil
}

func mysqlColumns(db *gorm.DB, table string) ([]Column, error) {
	query := `
		SELECT column_name, column_type, is_nullable, column_key, extra
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position`

	rows, err := db.Raw(query, table).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var name, colType, nullable, key, extra string
		if err := rows.Scan(&name, &colType, &nullable, &key, &extra); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		columns = append(columns, Column{
			Name:          name,
			Type:          colType,
			Nullable:      nullable == "YES",
			PrimaryKey:    key == "PRI",
			AutoGenerated: strings.Contains(extra, "auto_increment"),
		})
	}
	return columns, rows.Err()
}

func postgresColumns(db *gorm.DB, table string) ([]Column, error) {
	query := `
		SELECT column_name, data_type, is_nullable,
		       COALESCE(column_default, '') AS column_default,
		       is_identity
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = ?
		ORDER BY ordinal_position`

	rows, err := db.Raw(query, table).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var name, colType, nullable, colDefault, identity string
		if err := rows.Scan(&name, &colType, &nullable, &colDefault, &identity); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		columns = append(columns, Column{
			Name:          name,
			Type:          colType,
			Nullable:      nullable == "YES",
			AutoGenerated: identity == "YES" || strings.HasPrefix(colDefault, "nextval("),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return columns, nil
	}

	pkQuery := `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		WHERE tc.table_schema = 'public'
		  AND tc.table_name = ?
		  AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position`

	pkRows, err := db.Raw(pkQuery, table).Rows()
	if err != nil {
		return nil, fmt.Errorf("primary key query failed: %w", err)
	}
	defer pkRows.Close()

	pk := map[string]bool{}
	for pkRows.Next() {
		var name string
		if err := pkRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		pk[name] = true
	}
	if err := pkRows.Err(); err != nil {
		return nil, err
	}
	for i := range columns {
		columns[i].PrimaryKey = pk[columns[i].Name]
	}
	return columns, nil
}

func sqliteColumns(db *gorm.DB, table string) ([]Column, error) {
	// PRAGMA arguments cannot be bound; the identifier is validated
	// above and quoted here.
	query := "PRAGMA table_info(" + driver.QuoteIdent("sqlite", table) + ")"

	rows, err := db.Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var dfltValue any
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		// A single INTEGER primary key is an alias of the rowid, so the
		// engine assigns it on insert.
		columns = append(columns, Column{
			Name:          name,
			Type:          colType,
			Nullable:      notNull == 0 && pk == 0,
			PrimaryKey:    pk > 0,
			AutoGenerated: pk == 1 && strings.EqualFold(colType, "INTEGER"),
		})
	}
	return columns, rows.Err()
}

func sqlserverColumns(db *gorm.DB, table string) ([]Column, error) {
	query := `
		SELECT c.column_name, c.data_type, c.is_nullable,
		       COLUMNPROPERTY(OBJECT_ID(c.table_name), c.column_name, 'IsIdentity') AS is_identity,
		       CASE WHEN kcu.column_name IS NULL THEN 0 ELSE 1 END AS is_primary
		FROM information_schema.columns c
		LEFT JOIN information_schema.key_column_usage kcu
		  ON kcu.table_name = c.table_name
		 AND kcu.column_name = c.column_name
		 AND OBJECTPROPERTY(OBJECT_ID(kcu.constraint_name), 'IsPrimaryKey') = 1
		WHERE c.table_name = ?
		ORDER BY c.ordinal_position`

	rows, err := db.Raw(query, table).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var name, colType, nullable string
		var identity, primary int
		if err := rows.Scan(&name, &colType, &nullable, &identity, &primary); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		columns = append(columns, Column{
			Name:          name,
			Type:          colType,
			Nullable:      nullable == "YES",
			PrimaryKey:    primary == 1,
			AutoGenerated: identity == 1,
		})
	}
	return columns, rows.Err()
}
