package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/models"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService ClientSyncService
	project     ClientProjectService
	lock        AttemptLock

	address string
	secret  []byte

	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that runs one sync attempt of
// project against address on a ticker. Each attempt holds lock, and a tick
// is skipped while another process holds it. A nil lock disables locking.
// The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, project ClientProjectService, lock AttemptLock, address string, secret []byte, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		syncService: syncService,
		project:     project,
		lock:        lock,
		address:     address,
		secret:      secret,
		logger:      logger,
	}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that runs an attempt every interval. If
// interval is zero or negative it defaults to 5 minutes. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

// runOnce runs a single attempt to its terminal event. Terminal errors are
// logged and left for the next tick.
func (j *clientSyncJob) runOnce(ctx context.Context) {
	if j.lock != nil {
		locked, err := j.lock.TryLock()
		if err != nil {
			j.logger.Err(err).Str("func", "clientSyncJob.runOnce").Msg("failed to take the sync lock")
			return
		}
		if !locked {
			j.logger.Debug().Str("func", "clientSyncJob.runOnce").Msg("another process is syncing, skipping tick")
			return
		}
		defer func() {
			if err := j.lock.Unlock(); err != nil {
				j.logger.Err(err).Str("func", "clientSyncJob.runOnce").Msg("failed to release the sync lock")
			}
		}()
	}

	req, err := NewSyncRequest(j.project, j.address, j.secret)
	if err != nil {
		j.logger.Err(err).Str("func", "clientSyncJob.runOnce").Msg("failed to build sync request")
		return
	}

	events, err := j.syncService.Start(ctx, req)
	if errors.Is(err, ErrSyncInProgress) {
		j.logger.Debug().Str("func", "clientSyncJob.runOnce").Msg("sync in progress, skipping tick")
		return
	}
	if err != nil {
		j.logger.Err(err).Str("func", "clientSyncJob.runOnce").Msg("failed to start sync")
		return
	}

	var last models.SyncEvent
	for ev := range events {
		last = ev
	}

	if last.Stage.IsError() {
		j.logger.Err(last.Err).
			Str("func", "clientSyncJob.runOnce").
			Str("stage", last.Stage.String()).
			Msg("background sync failed")
		return
	}

	j.logger.Debug().
		Str("func", "clientSyncJob.runOnce").
		Str("stage", last.Stage.String()).
		Msg("background sync finished")
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
