package rows

import (
	"fmt"
	"strings"
	"time"

	"github.com/dracory/gridbase/shared/dberr"
	"github.com/dracory/gridbase/shared/driver"
	"github.com/dracory/gridbase/shared/schema"
	"gorm.io/gorm"
)

// Mutator builds and executes parameterized row mutations from column
// metadata and raw form submissions. Fields the client did not submit
// are omitted, never forced to null; submitted fields the table does
// not have are ignored.
type Mutator struct {
	DB     *gorm.DB
	Driver string

	// Now supplies the timestamp for auto-filled datetime columns.
	// Defaults to time.Now.
	Now func() time.Time
}

// autoFilled lists datetime columns stamped server-side at insert time
// when the client did not submit a value for them.
var autoFilled = map[string]bool{
	"created_at": true,
	"sent_at":    true,
}

type field struct {
	name  string
	value any
}

// Insert validates the submission against the table's columns, executes
// a parameterized INSERT, and returns the created row as persisted,
// including engine-assigned values. Insert and re-fetch run in one
// transaction.
func (m *Mutator) Insert(table string, submission map[string]string) (*Row, error) {
	columns, err := schema.Columns(m.DB, m.Driver, table)
	if err != nil {
		return nil, &SchemaError{Err: err}
	}
	if len(columns) == 0 {
		return nil, ErrUnknownTable
	}

	data := m.buildValues(columns, submission, "", true)
	if len(data) == 0 {
		return nil, ErrNoData
	}

	pk := primaryColumn(columns)

	var inserted *Row
	err = m.DB.Transaction(func(tx *gorm.DB) error {
		id, err := m.execInsert(tx, table, data, pk)
		if err != nil {
			return dberr.Wrap(m.Driver, "Insert", err)
		}

		if pk == nil {
			// No key to re-read the row by; echo the submitted values.
			inserted = rowFromFields(data)
			return nil
		}
		if id == nil {
			// Natural (non-generated) key: use the submitted value if
			// the client provided one, otherwise the row cannot be
			// addressed for a re-read.
			for _, f := range data {
				if f.name == pk.Name {
					id = f.value
				}
			}
			if id == nil {
				inserted = rowFromFields(data)
				return nil
			}
		}

		reader := &Reader{DB: tx, Driver: m.Driver}
		row, err := reader.FetchByKey(table, pk.Name, id)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetchAfterInsert, err)
		}
		if row == nil {
			return ErrFetchAfterInsert
		}
		inserted = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// execInsert runs the INSERT and returns the engine-assigned key value
// for an auto-generated primary key, or nil when the engine assigns
// nothing. Postgres and SQL Server return the key from the statement
// itself (RETURNING / OUTPUT INSERTED); mysql and sqlite read the
// session's last-insert id inside the same transaction. SCOPE_IDENTITY
// is batch-scoped and returns NULL from a separate round-trip, so SQL
// Server must not use it here.
func (m *Mutator) execInsert(tx *gorm.DB, table string, data []field, pk *schema.Column) (any, error) {
	driverName := driver.Normalize(m.Driver)

	names := make([]string, len(data))
	placeholders := make([]string, len(data))
	args := make([]any, len(data))
	for i, f := range data {
		names[i] = driver.QuoteIdent(m.Driver, f.name)
		placeholders[i] = "?"
		args[i] = f.value
	}
	insertInto := "INSERT INTO " + driver.QuoteIdent(m.Driver, table) +
		" (" + strings.Join(names, ", ") + ")"
	values := " VALUES (" + strings.Join(placeholders, ", ") + ")"

	if pk != nil {
		qpk := driver.QuoteIdent(m.Driver, pk.Name)
		var returning string
		switch driverName {
		case "postgres":
			returning = insertInto + values + " RETURNING " + qpk
		case "sqlserver":
			returning = insertInto + " OUTPUT INSERTED." + qpk + values
		}
		if returning != "" {
			var id any
			row := tx.Raw(returning, args...).Row()
			if err := row.Scan(&id); err != nil {
				return nil, err
			}
			return id, nil
		}
	}

	if err := tx.Exec(insertInto+values, args...).Error; err != nil {
		return nil, err
	}
	if pk == nil || !pk.AutoGenerated {
		return nil, nil
	}

	var query string
	switch driverName {
	case "mysql":
		query = "SELECT LAST_INSERT_ID()"
	case "sqlite":
		query = "SELECT last_insert_rowid()"
	default:
		return nil, fmt.Errorf("unsupported driver: %s", m.Driver)
	}
	var id int64
	if err := tx.Raw(query).Scan(&id).Error; err != nil {
		return nil, err
	}
	return id, nil
}

// Update executes a parameterized UPDATE of the row addressed by the
// table's primary key. The primary key column is never part of the SET
// clause, even when submitted. Zero affected rows is reported as a
// failure; this conflates "row did not exist" with "new values equal
// old values" and is documented as such.
func (m *Mutator) Update(table, id string, submission map[string]string) error {
	columns, err := schema.Columns(m.DB, m.Driver, table)
	if err != nil {
		return &SchemaError{Err: err}
	}
	if len(columns) == 0 {
		return ErrUnknownTable
	}
	pk := primaryColumn(columns)
	if pk == nil {
		return ErrNoPrimaryKey
	}

	data := m.buildValues(columns, submission, pk.Name, false)
	if len(data) == 0 {
		return ErrNoUpdatableFields
	}

	sets := make([]string, len(data))
	args := make([]any, 0, len(data)+1)
	for i, f := range data {
		sets[i] = driver.QuoteIdent(m.Driver, f.name) + " = ?"
		args = append(args, f.value)
	}
	args = append(args, id)

	updateSQL := "UPDATE " + driver.QuoteIdent(m.Driver, table) +
		" SET " + strings.Join(sets, ", ") +
		" WHERE " + driver.QuoteIdent(m.Driver, pk.Name) + " = ?"

	result := m.DB.Exec(updateSQL, args...)
	if result.Error != nil {
		return dberr.Wrap(m.Driver, "Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUpdateFailed
	}
	return nil
}

// Delete removes the row addressed by the table's primary key.
// A delete that matches no row is reported as ErrNotFound.
func (m *Mutator) Delete(table, id string) error {
	columns, err := schema.Columns(m.DB, m.Driver, table)
	if err != nil {
		return &SchemaError{Err: err}
	}
	if len(columns) == 0 {
		return ErrUnknownTable
	}
	pk := primaryColumn(columns)
	if pk == nil {
		return ErrNoPrimaryKey
	}

	deleteSQL := "DELETE FROM " + driver.QuoteIdent(m.Driver, table) +
		" WHERE " + driver.QuoteIdent(m.Driver, pk.Name) + " = ?"

	result := m.DB.Exec(deleteSQL, id)
	if result.Error != nil {
		return dberr.Wrap(m.Driver, "Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// buildValues walks the table's columns and assembles the ordered value
// list for a mutation: auto-generated columns are skipped entirely, the
// skip column (primary key on update) is always excluded, only
// submitted fields participate, and an empty string becomes NULL when
// the column is nullable.
func (m *Mutator) buildValues(columns []schema.Column, submission map[string]string, skip string, fillTimestamps bool) []field {
	var data []field
	for _, col := range columns {
		if col.AutoGenerated || col.Name == skip {
			continue
		}

		value, submitted := submission[col.Name]
		if !submitted || value == "" {
			if fillTimestamps && autoFilled[col.Name] && isDatetime(col.Type) {
				data = append(data, field{col.Name, m.now().Format("2006-01-02 15:04:05")})
				continue
			}
		}
		if !submitted {
			continue
		}

		if value == "" && col.Nullable {
			data = append(data, field{col.Name, nil})
		} else {
			data = append(data, field{col.Name, value})
		}
	}
	return data
}

func (m *Mutator) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func isDatetime(colType string) bool {
	t := strings.ToLower(colType)
	return strings.Contains(t, "datetime") || strings.Contains(t, "timestamp")
}

func primaryColumn(columns []schema.Column) *schema.Column {
	for i := range columns {
		if columns[i].PrimaryKey {
			return &columns[i]
		}
	}
	return nil
}

func rowFromFields(data []field) *Row {
	row := &Row{Values: make(map[string]any, len(data))}
	for _, f := range data {
		row.Columns = append(row.Columns, f.name)
		row.Values[f.name] = f.value
	}
	return row
}
