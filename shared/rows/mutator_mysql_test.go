package rows_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dracory/gridbase/shared/rows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func expectUserColumns(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`FROM information_schema\.columns`).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows(
			[]string{"column_name", "column_type", "is_nullable", "column_key", "extra"}).
			AddRow("id", "int(11)", "NO", "PRI", "auto_increment").
			AddRow("name", "varchar(255)", "NO", "", "").
			AddRow("email", "varchar(255)", "NO", "UNI", "").
			AddRow("phone", "varchar(32)", "YES", "", ""))
}

func TestInsertMySQLStatementShape(t *testing.T) {
	db, mock := setupMockDB(t)
	m := &rows.Mutator{DB: db, Driver: "mysql"}

	expectUserColumns(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users` \\(`name`, `email`\\) VALUES \\(\\?, \\?\\)").
		WithArgs("Bob", "bob@example.com").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(`SELECT LAST_INSERT_ID\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"LAST_INSERT_ID()"}).AddRow(7))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE `id` = \\?").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}).
			AddRow(7, "Bob", "bob@example.com", nil))
	mock.ExpectCommit()

	row, err := m.Insert("users", map[string]string{
		"id":    "999",
		"name":  "Bob",
		"email": "bob@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), row.Get("id"))
	assert.Equal(t, "Bob", row.Get("name"))
	assert.Nil(t, row.Get("phone"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMySQLRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	m := &rows.Mutator{DB: db, Driver: "mysql"}

	expectUserColumns(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'bob@example.com' for key 'users.email'"))
	mock.ExpectRollback()

	_, err := m.Insert("users", map[string]string{
		"name":  "Bob",
		"email": "bob@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, "Insert failed: Duplicate value.", err.Error())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMySQLStatementShape(t *testing.T) {
	db, mock := setupMockDB(t)
	m := &rows.Mutator{DB: db, Driver: "mysql"}

	expectUserColumns(mock)

	// Columns appear in catalog order, the key column never appears in
	// the SET clause, and the empty nullable phone travels as NULL.
	mock.ExpectExec("UPDATE `users` SET `name` = \\?, `phone` = \\? WHERE `id` = \\?").
		WithArgs("Bobby", nil, "7").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := m.Update("users", "7", map[string]string{
		"id":    "42",
		"name":  "Bobby",
		"phone": "",
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMySQLClassifiesEngineError(t *testing.T) {
	db, mock := setupMockDB(t)
	m := &rows.Mutator{DB: db, Driver: "mysql"}

	expectUserColumns(mock)
	mock.ExpectExec("UPDATE `users`").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'users.email'"))

	err := m.Update("users", "7", map[string]string{"email": "x"})
	require.Error(t, err)
	assert.Equal(t, "Update failed: Duplicate value.", err.Error())

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A catalog lookup that fails outright is a server-side condition, not
// bad client input, and the native driver text must stay out of the
// error shown to clients.
func TestInsertMySQLCatalogFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	m := &rows.Mutator{DB: db, Driver: "mysql"}

	mock.ExpectQuery(`FROM information_schema\.columns`).
		WithArgs("users").
		WillReturnError(errors.New("Error 2013 (HY000): Lost connection to MySQL server during query"))

	_, err := m.Insert("users", map[string]string{"name": "Bob"})
	require.Error(t, err)
	assert.ErrorIs(t, err, rows.ErrSchemaUnavailable)
	assert.NotErrorIs(t, err, rows.ErrUnknownTable)
	assert.Equal(t, "could not read table metadata", err.Error())
	assert.NotContains(t, err.Error(), "Lost connection")

	// The native text stays reachable for logs.
	var schemaErr *rows.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Unwrap().Error(), "Lost connection")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMySQLCatalogFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	m := &rows.Mutator{DB: db, Driver: "mysql"}

	mock.ExpectQuery(`FROM information_schema\.columns`).
		WithArgs("users").
		WillReturnError(errors.New("Error 2013 (HY000): Lost connection to MySQL server during query"))

	err := m.Update("users", "7", map[string]string{"name": "Bob"})
	require.Error(t, err)
	assert.ErrorIs(t, err, rows.ErrSchemaUnavailable)
	assert.Equal(t, "could not read table metadata", err.Error())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMySQLCatalogFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	m := &rows.Mutator{DB: db, Driver: "mysql"}

	mock.ExpectQuery(`FROM information_schema\.columns`).
		WithArgs("users").
		WillReturnError(errors.New("Error 2013 (HY000): Lost connection to MySQL server during query"))

	err := m.Delete("users", "7")
	require.Error(t, err)
	assert.ErrorIs(t, err, rows.ErrSchemaUnavailable)
	assert.Equal(t, "could not read table metadata", err.Error())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMySQLStatementShape(t *testing.T) {
	db, mock := setupMockDB(t)
	m := &rows.Mutator{DB: db, Driver: "mysql"}

	expectUserColumns(mock)
	mock.ExpectExec("DELETE FROM `users` WHERE `id` = \\?").
		WithArgs("7").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, m.Delete("users", "7"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
