// Package migrations embeds the goose schema migrations of both databases:
// the client's SQLite history store (client/) and the history server's
// PostgreSQL snapshot table (server/).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dialect selects the migration set and the goose dialect.
type Dialect string

const (
	// SQLite is the client-side local history database.
	SQLite Dialect = "sqlite3"
	// Postgres is the history server database.
	Postgres Dialect = "pgx"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

var ErrUnknownDialect = errors.New("unknown migration dialect")

func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	dir, err := dialect.dir()
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func (d Dialect) dir() (string, error) {
	switch d {
	case SQLite:
		return "client", nil
	case Postgres:
		return "server", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, string(d))
	}
}
