package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-history-sync/internal/adapter"
	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/crypto"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/store"
	"github.com/gofrs/flock"
)

type ClientServices struct {
	ProjectService ClientProjectService
	SyncService    ClientSyncService
	SyncJob        ClientSyncJob
}

func NewClientServices(ctx context.Context, storages *store.ClientStorages, transport adapter.Transport, cfg *config.ClientConfig, logger *logger.Logger) (*ClientServices, error) {
	projectSvc, err := NewClientProjectService(ctx, cfg.App.ProjectID, storages.HistoryRepository, logger)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}

	syncSvc := NewClientSyncService(transport, crypto.NewSnapshotCipher(), projectSvc, cfg.Workers, logger)
	secret := []byte(cfg.App.ProjectSecret)

	return &ClientServices{
		ProjectService: projectSvc,
		SyncService:    syncSvc,
		SyncJob:        NewClientSyncJob(syncSvc, projectSvc, flock.New(cfg.Storage.DB.LockPath()), cfg.Adapter.Address, secret, logger),
	}, nil
}
