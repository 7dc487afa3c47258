package store

import (
	"context"

	"github.com/MKhiriev/go-history-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalHistoryRepository persists the client's working history. Revisions are
// stored in their history order under (project_id, seq).
type LocalHistoryRepository interface {
	// LoadHistory returns the stored history of projectID. A project that was
	// never saved yields an empty root at version 0.
	LoadHistory(ctx context.Context, projectID string) (models.HistoryRoot, error)

	// AppendRevision stores entry at position seq of projectID's history.
	AppendRevision(ctx context.Context, projectID string, seq int, entry models.RevisionEntry) error

	// ReplaceHistory atomically swaps the whole stored history of projectID
	// for the root returned by rebuild. rebuild receives the history stored
	// at that moment, read in the same transaction, so revisions appended by
	// another process are never overwritten unseen. rebuild may run more than
	// once when a busy database forces a retry.
	ReplaceHistory(ctx context.Context, projectID string, rebuild func(stored models.HistoryRoot) (models.HistoryRoot, error)) error
}
