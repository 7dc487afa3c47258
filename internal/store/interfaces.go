package store

import (
	"context"

	"github.com/MKhiriev/go-history-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// HistoryRepository stores encrypted history snapshots on the history server.
type HistoryRepository interface {
	// GetHistory returns the snapshot stored under remoteID, or
	// [ErrHistoryNotFound].
	GetHistory(ctx context.Context, remoteID string) (models.HistoryBlob, error)

	// SaveHistory replaces the snapshot stored under blob.RemoteID. An existing
	// snapshot encrypted under a different key is left untouched and
	// [ErrKeyHashMismatch] is returned. A push whose BaseETag no longer
	// matches the stored snapshot fails with [ErrHistoryChanged].
	SaveHistory(ctx context.Context, blob models.HistoryBlob) error
}
