package store

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/migrations"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newPostgresDB wraps a sqlmock handle the way NewConnectPostgres wraps pgx.
func newPostgresDB(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		dialect:            migrations.Postgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

// newSQLiteDB wraps a sqlmock handle the way NewConnectSQLite wraps sqlite3.
func newSQLiteDB(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		dialect:            migrations.SQLite,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}
