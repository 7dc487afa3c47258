package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/history"
	"github.com/MKhiriev/go-history-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// HistoryInstaller receives a merged history after a successful push.
// Implementations must install it atomically: either the whole merged history
// becomes visible to the editing layer or nothing changes.
type HistoryInstaller interface {
	Install(ctx context.Context, merged *history.Store) error
}

// ClientProjectService is the editing layer's view of one project's history.
// All methods are safe for concurrent use.
type ClientProjectService interface {
	HistoryInstaller

	// Commit serializes record, appends it as a new revision and persists it.
	// An empty record ID is filled with a fresh UUID and a zero CreatedAt with
	// the current time. Returns the committed revision.
	Commit(ctx context.Context, record models.ChangeRecord) (models.RevisionInfo, error)

	// Snapshot returns the serialized (unencrypted) history tree of the live
	// store, ready to be used as a sync request's local snapshot.
	Snapshot() ([]byte, error)

	// Log returns the committed revisions in order.
	Log() ([]models.RevisionInfo, error)

	// Version returns the version counter of the live store.
	Version() int64

	// ProjectID returns the root identifier of the project.
	ProjectID() string
}

// ClientSyncService runs synchronization attempts of a local history against
// a remote snapshot.
type ClientSyncService interface {
	// Start validates req, decodes its local snapshot and launches one attempt
	// on its own goroutine. The returned channel carries stage transitions and
	// byte progress; it receives exactly one terminal event and is then closed.
	//
	// Start never blocks on the network. It fails with ErrInvalidSyncRequest
	// for a malformed request and with ErrSyncInProgress while another attempt
	// for the same project is running.
	Start(ctx context.Context, req models.SyncRequest) (<-chan models.SyncEvent, error)
}

// AttemptLock serializes sync attempts across client processes sharing one
// database. *flock.Flock satisfies it.
type AttemptLock interface {
	// TryLock takes the lock without blocking and reports whether it did.
	TryLock() (bool, error)
	Unlock() error
}

// ClientSyncJob defines the contract for a background worker that
// periodically runs a sync attempt for the open project.
type ClientSyncJob interface {
	// Start launches the background goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
