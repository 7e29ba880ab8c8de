// Package rows reads and mutates table rows using column metadata
// resolved at request time. Table and column names are validated
// against the schema catalog before they appear in identifier
// position; values always travel as bound parameters.
package rows

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dracory/gridbase/shared/driver"
	"gorm.io/gorm"
)

// Row is one persisted row as an ordered field -> value mapping.
// Keys come from the table's columns; values are strings or nil.
type Row struct {
	Columns []string
	Values  map[string]any
}

// Get returns the value for a column, or nil when absent.
func (r *Row) Get(name string) any { return r.Values[name] }

// MarshalJSON encodes the row as a JSON object with keys in column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Reader fetches table rows as ordered field -> value mappings.
type Reader struct {
	DB     *gorm.DB
	Driver string
}

// FetchAll returns every row of the table in storage order.
func (r *Reader) FetchAll(table string) ([]*Row, error) {
	if !driver.IsSafeIdent(table) {
		return nil, fmt.Errorf("invalid table identifier: %q", table)
	}
	query := "SELECT * FROM " + driver.QuoteIdent(r.Driver, table)
	return r.fetch(query)
}

// FetchByKey returns the single row whose key column equals val,
// or nil when no row matches.
func (r *Reader) FetchByKey(table, keyColumn string, val any) (*Row, error) {
	if !driver.IsSafeIdent(table) || !driver.IsSafeIdent(keyColumn) {
		return nil, fmt.Errorf("invalid identifier")
	}
	query := "SELECT * FROM " + driver.QuoteIdent(r.Driver, table) +
		" WHERE " + driver.QuoteIdent(r.Driver, keyColumn) + " = ?"
	result, err := r.fetch(query, val)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

func (r *Reader) fetch(query string, args ...any) ([]*Row, error) {
	sqlRows, err := r.DB.Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer sqlRows.Close()

	columns, err := sqlRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error getting columns: %w", err)
	}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	var result []*Row
	for sqlRows.Next() {
		if err := sqlRows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		row := &Row{Columns: columns, Values: make(map[string]any, len(columns))}
		for i, val := range values {
			switch v := val.(type) {
			case []byte:
				row.Values[columns[i]] = string(v)
			default:
				row.Values[columns[i]] = v
			}
		}
		result = append(result, row)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}
