package driver

import "strings"

// Normalize normalizes a driver name for consistent comparison.
func Normalize(driverName string) string {
	switch strings.ToLower(driverName) {
	case "postgres", "postgresql", "pg", "pgx":
		return "postgres"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "sqlserver", "mssql":
		return "sqlserver"
	default:
		return driverName
	}
}

// IsSafeIdent reports whether an identifier contains only safe characters.
// Allows alphanumeric and underscore, not starting with a number.
func IsSafeIdent(ident string) bool {
	if len(ident) == 0 || (ident[0] >= '0' && ident[0] <= '9') {
		return false
	}
	for _, c := range ident {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '_') {
			return false
		}
	}
	return true
}

// QuoteIdent quotes an identifier for the given SQL dialect.
func QuoteIdent(driverName, ident string) string {
	switch Normalize(driverName) {
	case "mysql":
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	case "postgres", "sqlite":
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	case "sqlserver":
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	default:
		return ident
	}
}
