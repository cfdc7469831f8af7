package store

import (
	"time"

	"prodanalytics/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	Role    string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot guard knobs, zero means the defaults in openers.go
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
}

// FromConfig reads STORE_PGSQL_* and STORE_CLICKHOUSE_* values.
// Backends stay disabled; callers enable the ones they need
func FromConfig(cfg config.Conf, appName, role string) Config {
	pc := cfg.Prefix("STORE_PGSQL_")
	cc := cfg.Prefix("STORE_CLICKHOUSE_")
	return Config{
		AppName: appName,
		Role:    role,
		PG: PGConfig{
			URL:            pc.MayString("DBURL", ""),
			MaxConns:       int32(pc.MayInt("MAX_CONNS", 4)),
			LogSQL:         pc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pc.MayInt("SLOW_MS", 500),
			ConnectRetries: pc.MayInt("CONNECT_RETRIES", 6),
		},
		CH: CHConfig{
			URL:         cc.MayString("DBURL", ""),
			DialTimeout: time.Duration(cc.MayInt("DIAL_TIMEOUT_MS", 5000)) * time.Millisecond,
		},
	}
}
