package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/models"
	"github.com/mattn/go-sqlite3"
)

type localHistoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalHistoryRepository(db *DB, logger *logger.Logger) LocalHistoryRepository {
	return &localHistoryRepository{
		DB:     db,
		logger: logger,
	}
}

// queryer is satisfied by both the connection pool and a transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (l *localHistoryRepository) LoadHistory(ctx context.Context, projectID string) (models.HistoryRoot, error) {
	return loadHistory(ctx, l.DB, projectID)
}

func loadHistory(ctx context.Context, q queryer, projectID string) (models.HistoryRoot, error) {
	log := logger.FromContext(ctx)
	root := models.HistoryRoot{ProjectID: projectID, Revisions: []models.RevisionEntry{}}

	err := q.QueryRowContext(ctx, selectProjectVersion, projectID).Scan(&root.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return root, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "localHistoryRepository.LoadHistory").
			Str("project_id", projectID).
			Msg("failed to query project version")
		return models.HistoryRoot{}, fmt.Errorf("%w: project version: %w", ErrExecutingQuery, err)
	}

	rows, err := q.QueryContext(ctx, selectRevisions, projectID)
	if err != nil {
		log.Err(err).
			Str("func", "localHistoryRepository.LoadHistory").
			Str("project_id", projectID).
			Msg("failed to query revisions")
		return models.HistoryRoot{}, fmt.Errorf("%w: revisions: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	expected := 0
	for rows.Next() {
		var (
			seq   int
			entry models.RevisionEntry
		)
		if scanErr := rows.Scan(&seq, &entry.Hash, &entry.Payload); scanErr != nil {
			log.Err(scanErr).
				Str("func", "localHistoryRepository.LoadHistory").
				Str("project_id", projectID).
				Msg("failed to scan revision row")
			return models.HistoryRoot{}, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		if seq != expected {
			return models.HistoryRoot{}, fmt.Errorf("%w: revision gap at seq %d (got %d)", ErrScanningRows, expected, seq)
		}
		expected++
		root.Revisions = append(root.Revisions, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localHistoryRepository.LoadHistory").
			Str("project_id", projectID).
			Msg("error occurred during rows iteration")
		return models.HistoryRoot{}, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return root, nil
}

func (l *localHistoryRepository) AppendRevision(ctx context.Context, projectID string, seq int, entry models.RevisionEntry) error {
	log := logger.FromContext(ctx)

	return l.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, ensureProject, projectID); err != nil {
			log.Err(err).
				Str("func", "localHistoryRepository.AppendRevision").
				Str("project_id", projectID).
				Msg("failed to ensure project row")
			return fmt.Errorf("%w: ensure project: %w", ErrExecutingStatement, err)
		}

		if _, err := tx.ExecContext(ctx, insertRevision, projectID, seq, entry.Hash, entry.Payload); err != nil {
			log.Err(err).
				Str("func", "localHistoryRepository.AppendRevision").
				Str("project_id", projectID).
				Int("seq", seq).
				Msg("failed to insert revision")
			if isSQLiteConstraint(err) {
				return fmt.Errorf("%w: seq %d: %w", ErrRevisionConflict, seq, err)
			}
			return fmt.Errorf("%w: insert revision: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func (l *localHistoryRepository) ReplaceHistory(ctx context.Context, projectID string, rebuild func(stored models.HistoryRoot) (models.HistoryRoot, error)) error {
	log := logger.FromContext(ctx)

	return l.inTx(ctx, func(tx *sql.Tx) error {
		stored, err := loadHistory(ctx, tx, projectID)
		if err != nil {
			return err
		}

		root, err := rebuild(stored)
		if err != nil {
			return err
		}
		if root.ProjectID != projectID {
			return fmt.Errorf("%w: rebuilt history belongs to %q, not %q", ErrRevisionConflict, root.ProjectID, projectID)
		}

		if _, err = tx.ExecContext(ctx, upsertProjectVersion, projectID, root.Version); err != nil {
			log.Err(err).
				Str("func", "localHistoryRepository.ReplaceHistory").
				Str("project_id", projectID).
				Msg("failed to upsert project version")
			return fmt.Errorf("%w: upsert project: %w", ErrExecutingStatement, err)
		}

		if _, err = tx.ExecContext(ctx, deleteRevisions, projectID); err != nil {
			log.Err(err).
				Str("func", "localHistoryRepository.ReplaceHistory").
				Str("project_id", projectID).
				Msg("failed to delete revisions")
			return fmt.Errorf("%w: delete revisions: %w", ErrExecutingStatement, err)
		}

		for seq, entry := range root.Revisions {
			if _, err = tx.ExecContext(ctx, insertRevision, projectID, seq, entry.Hash, entry.Payload); err != nil {
				log.Err(err).
					Str("func", "localHistoryRepository.ReplaceHistory").
					Str("project_id", projectID).
					Int("seq", seq).
					Msg("failed to insert revision")
				return fmt.Errorf("%w: insert revision %d: %w", ErrExecutingStatement, seq, err)
			}
		}
		return nil
	})
}

// inTx runs fn inside a transaction and commits it, rolling back on any
// error. The whole transaction is retried while the database is busy.
func (l *localHistoryRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return l.withRetry(ctx, func() error {
		return l.runTx(ctx, fn)
	})
}

func (l *localHistoryRepository) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func isSQLiteConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
