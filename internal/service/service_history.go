package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/store"
	"github.com/MKhiriev/go-history-sync/models"
)

// DefaultMaxUploadSize caps a pushed blob when the configuration sets no limit.
const DefaultMaxUploadSize int64 = config.DefaultMaxUploadSize

type historyService struct {
	historyRepository store.HistoryRepository

	maxUploadSize int64

	now    func() time.Time
	logger *logger.Logger
}

func NewHistoryService(historyRepository store.HistoryRepository, cfg config.Server, logger *logger.Logger) HistoryService {
	maxUploadSize := cfg.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}

	return &historyService{
		historyRepository: historyRepository,
		maxUploadSize:     maxUploadSize,
		now:               time.Now,
		logger:            logger,
	}
}

func (h *historyService) GetHistory(ctx context.Context, remoteID string) (models.HistoryBlob, error) {
	log := logger.FromContext(ctx)

	if remoteID == "" {
		log.Error().Str("func", "historyService.GetHistory").Msg("empty remote id")
		return models.HistoryBlob{}, ErrInvalidDataProvided
	}

	blob, err := h.historyRepository.GetHistory(ctx, remoteID)
	if errors.Is(err, store.ErrHistoryNotFound) {
		return models.HistoryBlob{}, ErrHistoryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "historyService.GetHistory").
			Str("remote_id", remoteID).
			Msg("failed to load history blob")
		return models.HistoryBlob{}, fmt.Errorf("load history blob: %w", err)
	}

	if blob.ETag == "" {
		blob.ETag = models.BlobETag(blob.Blob)
	}
	return blob, nil
}

func (h *historyService) SaveHistory(ctx context.Context, blob models.HistoryBlob) error {
	log := logger.FromContext(ctx)

	if blob.RemoteID == "" || blob.KeyHash == "" || len(blob.Blob) == 0 {
		log.Error().
			Str("func", "historyService.SaveHistory").
			Str("remote_id", blob.RemoteID).
			Bool("has_key_hash", blob.KeyHash != "").
			Int("size", len(blob.Blob)).
			Msg("invalid history blob provided")
		return ErrInvalidDataProvided
	}
	if int64(len(blob.Blob)) > h.maxUploadSize {
		log.Error().
			Str("func", "historyService.SaveHistory").
			Str("remote_id", blob.RemoteID).
			Int("size", len(blob.Blob)).
			Int64("limit", h.maxUploadSize).
			Msg("history blob too large")
		return ErrPayloadTooLarge
	}

	blob.ETag = models.BlobETag(blob.Blob)
	blob.UpdatedAt = h.now().UTC()

	err := h.historyRepository.SaveHistory(ctx, blob)
	if errors.Is(err, store.ErrHistoryChanged) {
		log.Warn().
			Str("func", "historyService.SaveHistory").
			Str("remote_id", blob.RemoteID).
			Str("base_etag", blob.BaseETag).
			Msg("push refused: based on a stale history")
		return ErrHistoryChanged
	}
	if errors.Is(err, store.ErrKeyHashMismatch) {
		log.Warn().
			Str("func", "historyService.SaveHistory").
			Str("remote_id", blob.RemoteID).
			Msg("push refused: history is stored under a different key")
		return ErrKeyHashMismatch
	}
	if err != nil {
		log.Err(err).
			Str("func", "historyService.SaveHistory").
			Str("remote_id", blob.RemoteID).
			Msg("failed to save history blob")
		return fmt.Errorf("save history blob: %w", err)
	}

	return nil
}
