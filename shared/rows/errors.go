package rows

import "errors"

// Validation and outcome errors surfaced by the Reader and Mutator.
// Handlers map these onto HTTP status codes with errors.Is.
var (
	// ErrUnknownTable is returned when the table is absent or has no
	// columns; the contract does not distinguish the two cases.
	ErrUnknownTable = errors.New("invalid table")

	// ErrSchemaUnavailable is returned when the table's column metadata
	// could not be read at all. Unlike ErrUnknownTable this is a server
	// failure, not bad client input.
	ErrSchemaUnavailable = errors.New("could not read table metadata")

	// ErrNoData is returned when an insert submission contains no
	// usable column values.
	ErrNoData = errors.New("no data to insert")

	// ErrNoUpdatableFields is returned when an update submission is
	// empty after excluding the primary key column.
	ErrNoUpdatableFields = errors.New("no updatable fields provided")

	// ErrNoPrimaryKey is returned when update or delete target a table
	// without a primary key. This is a server misconfiguration, not a
	// client error.
	ErrNoPrimaryKey = errors.New("primary key not found")

	// ErrUpdateFailed is returned when an update affected zero rows.
	ErrUpdateFailed = errors.New("update failed")

	// ErrNotFound is returned when a delete matched no row.
	ErrNotFound = errors.New("row not found")

	// ErrFetchAfterInsert is returned when the freshly inserted row
	// cannot be read back. The insert itself succeeded.
	ErrFetchAfterInsert = errors.New("inserted row could not be read back")
)

// SchemaError is a failed catalog lookup. Like dberr.Error, its Error
// text is safe to show a client; the native error stays behind Unwrap.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string { return ErrSchemaUnavailable.Error() }

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaUnavailable }
