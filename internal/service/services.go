package service

import (
	"fmt"

	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/store"
	"github.com/MKhiriev/go-history-sync/models"
)

type Services struct {
	AuthService    AuthService
	HistoryService HistoryService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		HistoryService: NewHistoryService(storages.HistoryRepository, cfg.Server, logger),
		AppInfoService: appInfoService,
	}, nil
}
