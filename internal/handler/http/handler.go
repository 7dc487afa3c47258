package http

import (
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/service"
)

type Handler struct {
	services *service.Services

	// maxUploadSize caps the request body of a push.
	maxUploadSize int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, maxUploadSize int64, logger *logger.Logger) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = service.DefaultMaxUploadSize
	}

	logger.Info().Int64("max_upload_size", maxUploadSize).Msg("http handler created")
	return &Handler{
		services:      services,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}
