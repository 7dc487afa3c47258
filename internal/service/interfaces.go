package service

import (
	"context"

	"github.com/MKhiriev/go-history-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// HistoryService stores and serves encrypted history blobs on the server.
// The server never sees plaintext history.
type HistoryService interface {
	// GetHistory returns the blob stored under remoteID, or ErrHistoryNotFound.
	GetHistory(ctx context.Context, remoteID string) (models.HistoryBlob, error)

	// SaveHistory replaces the blob stored under blob.RemoteID. A blob pushed
	// under a key hash different from the stored one fails with
	// ErrKeyHashMismatch; an oversized one with ErrPayloadTooLarge. When
	// blob.BaseETag is set and the stored blob is no longer that one, the push
	// fails with ErrHistoryChanged.
	SaveHistory(ctx context.Context, blob models.HistoryBlob) error
}

// AuthService issues and verifies project-scoped bearer tokens.
type AuthService interface {
	CreateToken(ctx context.Context, subject string, projects ...string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
