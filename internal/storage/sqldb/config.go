package sqldb

// Dialect selects the SQL flavor and driver
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Config holds SQL storage settings
type Config struct {
	// Dialect is either "sqlite" or "postgres"
	Dialect Dialect

	// DSN is the driver-specific connection string. For SQLite this is a
	// file path (or ":memory:"); for Postgres a connection URL.
	DSN string
}

// DefaultConfig returns a local SQLite file database
func DefaultConfig() Config {
	return Config{
		Dialect: DialectSQLite,
		DSN:     "slgame.db",
	}
}
