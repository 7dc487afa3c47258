package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/models"
)

type historyRepository struct {
	*DB
	logger *logger.Logger
}

func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	return &historyRepository{
		DB:     db,
		logger: logger,
	}
}

func (h *historyRepository) GetHistory(ctx context.Context, remoteID string) (models.HistoryBlob, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectHistoryQuery(remoteID)
	if err != nil {
		return models.HistoryBlob{}, err
	}

	var blob models.HistoryBlob
	err = h.withRetry(ctx, func() error {
		return h.DB.QueryRowContext(ctx, query, args...).
			Scan(&blob.RemoteID, &blob.Blob, &blob.KeyHash, &blob.ETag, &blob.UpdatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryBlob{}, ErrHistoryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "historyRepository.GetHistory").
			Str("remote_id", remoteID).
			Msg("failed to query history")
		return models.HistoryBlob{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return blob, nil
}

func (h *historyRepository) SaveHistory(ctx context.Context, blob models.HistoryBlob) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertHistoryQuery(blob)
	if err != nil {
		return err
	}

	var affected int64
	err = h.withRetry(ctx, func() error {
		res, execErr := h.DB.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "historyRepository.SaveHistory").
			Str("remote_id", blob.RemoteID).
			Msg("failed to upsert history")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return h.refusal(ctx, blob)
	}

	return nil
}

// refusal tells why an upsert of blob affected no row: the stored snapshot is
// under another key, or it is not the one the push was based on.
func (h *historyRepository) refusal(ctx context.Context, blob models.HistoryBlob) error {
	log := logger.FromContext(ctx)

	stored, err := h.GetHistory(ctx, blob.RemoteID)
	if err != nil && !errors.Is(err, ErrHistoryNotFound) {
		return err
	}

	if err == nil && stored.KeyHash != blob.KeyHash {
		log.Warn().
			Str("func", "historyRepository.SaveHistory").
			Str("remote_id", blob.RemoteID).
			Msg("history push under a different key refused")
		return ErrKeyHashMismatch
	}

	log.Warn().
		Str("func", "historyRepository.SaveHistory").
		Str("remote_id", blob.RemoteID).
		Str("base_etag", blob.BaseETag).
		Str("stored_etag", stored.ETag).
		Msg("history push based on a stale snapshot refused")
	return ErrHistoryChanged
}
