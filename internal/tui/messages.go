package tui

import (
	"github.com/MKhiriev/go-history-sync/models"
)

type syncEventMsg struct {
	event models.SyncEvent
}

type syncClosedMsg struct{}
