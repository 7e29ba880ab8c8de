package gridbase

import (
	"flag"
	"fmt"

	"github.com/dracory/env"
	"github.com/dracory/gridbase/shared/constants"
	"github.com/dracory/gridbase/shared/types"
)

// LoadConfig reads flags/env with sensible defaults.
// Flags take precedence over env.
func LoadConfig() (types.Config, error) {
	var cfg types.Config

	// Optionally load from .env files (missing files are ignored inside the lib)
	env.Load(".env")

	// Defaults via env package
	cfg.HTTPPort = env.GetIntOrDefault("HTTP_PORT", 8080)
	cfg.BasePath = env.GetStringOrDefault("BASE_URL", "/")
	cfg.ActionParam = env.GetStringOrDefault("ACTION_PARAM", "action")
	cfg.Driver = env.GetStringOrDefault("DB_DRIVER", constants.DriverSQLite)
	cfg.DSN = env.GetStringOrDefault("DB_DSN", "gridbase.db")

	// Flags
	port := flag.Int("port", cfg.HTTPPort, "HTTP port to listen on")
	base := flag.String("base", cfg.BasePath, "Base path to mount handler under (e.g. /db)")
	driverName := flag.String("driver", cfg.Driver, "Database driver (mysql, postgres, sqlite, sqlserver)")
	dsn := flag.String("dsn", cfg.DSN, "Database DSN")
	flag.Parse()

	cfg.HTTPPort = *port
	cfg.BasePath = *base
	cfg.Driver = *driverName
	cfg.DSN = *dsn

	if cfg.DSN == "" {
		return cfg, fmt.Errorf("DB_DSN is required")
	}
	return cfg, nil
}
