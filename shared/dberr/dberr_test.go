package dberr_test

import (
	"errors"
	"testing"

	"github.com/dracory/gridbase/shared/dberr"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		msg    string
		want   dberr.Kind
	}{
		{"mysql duplicate", "mysql", "Error 1062 (23000): Duplicate entry 'a@x.com' for key 'users.email'", dberr.KindDuplicate},
		{"mysql not null", "mysql", "Error 1048 (23000): Column 'name' cannot be null", dberr.KindNotNull},
		{"mysql missing default", "mysql", "Error 1364 (HY000): Field 'name' doesn't have a default value", dberr.KindNotNull},
		{"mysql foreign key", "mysql", "Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails", dberr.KindIntegrity},
		{"postgres duplicate", "postgres", `ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`, dberr.KindDuplicate},
		{"postgres not null", "postgres", `ERROR: null value in column "name" of relation "users" violates not-null constraint (SQLSTATE 23502)`, dberr.KindNotNull},
		{"postgres foreign key", "postgres", `ERROR: insert or update on table "orders" violates foreign key constraint "orders_user_id_fkey" (SQLSTATE 23503)`, dberr.KindIntegrity},
		{"sqlite duplicate", "sqlite", "UNIQUE constraint failed: users.email", dberr.KindDuplicate},
		{"sqlite not null", "sqlite", "NOT NULL constraint failed: users.name", dberr.KindNotNull},
		{"sqlite foreign key", "sqlite", "FOREIGN KEY constraint failed", dberr.KindIntegrity},
		{"sqlserver duplicate", "sqlserver", "mssql: Violation of UNIQUE KEY constraint 'UQ_users_email'. Cannot insert duplicate key in object 'dbo.users'.", dberr.KindDuplicate},
		{"sqlserver not null", "sqlserver", "mssql: Cannot insert the value NULL into column 'name', table 'shop.dbo.users'; column does not allow nulls.", dberr.KindNotNull},
		{"driver alias", "sqlite3", "UNIQUE constraint failed: users.email", dberr.KindDuplicate},
		{"unrecognized message", "mysql", "Error 2006 (HY000): MySQL server has gone away", dberr.KindUnknown},
		{"unknown engine", "oracle", "ORA-00001: unique constraint violated", dberr.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dberr.Classify(tt.driver, errors.New(tt.msg)))
		})
	}
}

func TestClassifyNilError(t *testing.T) {
	assert.Equal(t, dberr.KindUnknown, dberr.Classify("mysql", nil))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Insert failed: Duplicate value.", dberr.KindDuplicate.Message("Insert"))
	assert.Equal(t, "Insert failed: Required field missing.", dberr.KindNotNull.Message("Insert"))
	assert.Equal(t, "Update failed: Invalid or missing data.", dberr.KindIntegrity.Message("Update"))
	assert.Equal(t, "Delete failed: Database error.", dberr.KindUnknown.Message("Delete"))
}

func TestWrapHidesNativeText(t *testing.T) {
	native := errors.New("Error 1062 (23000): Duplicate entry 'a@x.com' for key 'users.email'")
	wrapped := dberr.Wrap("mysql", "Insert", native)

	assert.Equal(t, "Insert failed: Duplicate value.", wrapped.Error())
	assert.NotContains(t, wrapped.Error(), "a@x.com")
	assert.ErrorIs(t, wrapped, native)
}
