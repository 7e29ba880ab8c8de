// Package dberr translates engine-native database error text into a
// small closed set of user-facing failure kinds. Classification is by
// substring match against the engine's native message, behind a single
// per-engine pattern table, so supporting another engine means adding
// one table entry, not scattering string checks.
package dberr

import (
	"strings"

	"github.com/dracory/gridbase/shared/driver"
)

// Kind is a domain-meaningful database failure category.
type Kind int

const (
	KindUnknown Kind = iota
	KindIntegrity
	KindNotNull
	KindDuplicate
)

type pattern struct {
	substr string
	kind   Kind
}

// patterns maps each engine to its native error message fragments.
// Order matters: the more specific fragments come first.
var patterns = map[string][]pattern{
	"mysql": {
		{"Duplicate entry", KindDuplicate},
		{"cannot be null", KindNotNull},
		{"doesn't have a default value", KindNotNull},
		{"a foreign key constraint fails", KindIntegrity},
		{"Integrity constraint violation", KindIntegrity},
		{"CHECK constraint", KindIntegrity},
	},
	"postgres": {
		{"duplicate key value violates unique constraint", KindDuplicate},
		{"null value in column", KindNotNull},
		{"violates foreign key constraint", KindIntegrity},
		{"violates check constraint", KindIntegrity},
	},
	"sqlite": {
		{"UNIQUE constraint failed", KindDuplicate},
		{"NOT NULL constraint failed", KindNotNull},
		{"FOREIGN KEY constraint failed", KindIntegrity},
		{"CHECK constraint failed", KindIntegrity},
	},
	"sqlserver": {
		{"Violation of PRIMARY KEY constraint", KindDuplicate},
		{"Violation of UNIQUE KEY constraint", KindDuplicate},
		{"Cannot insert duplicate key", KindDuplicate},
		{"Cannot insert the value NULL", KindNotNull},
		{"conflicted with the FOREIGN KEY constraint", KindIntegrity},
		{"conflicted with the CHECK constraint", KindIntegrity},
	},
}

// Classify maps a database error onto a Kind using the engine's
// pattern table. A nil error or unrecognized message yields KindUnknown.
func Classify(driverName string, err error) Kind {
	if err == nil {
		return KindUnknown
	}
	msg := err.Error()
	for _, p := range patterns[driver.Normalize(driverName)] {
		if strings.Contains(msg, p.substr) {
			return p.kind
		}
	}
	return KindUnknown
}

// Message returns the user-facing description for the kind, prefixed
// with the failed operation, e.g. "Insert failed: Duplicate value.".
func (k Kind) Message(verb string) string {
	switch k {
	case KindIntegrity:
		return verb + " failed: Invalid or missing data."
	case KindNotNull:
		return verb + " failed: Required field missing."
	case KindDuplicate:
		return verb + " failed: Duplicate value."
	default:
		return verb + " failed: Database error."
	}
}

// Error is a classified database failure. Its Error text is the
// user-facing message; the raw engine error stays behind Unwrap and
// must never reach a client.
type Error struct {
	Kind Kind
	Verb string
	Err  error
}

func (e *Error) Error() string { return e.Kind.Message(e.Verb) }

func (e *Error) Unwrap() error { return e.Err }

// Wrap classifies err for the given engine and operation verb.
func Wrap(driverName, verb string, err error) *Error {
	return &Error{Kind: Classify(driverName, err), Verb: verb, Err: err}
}
