package config

import (
	"fmt"
	"time"
)

// DefaultSettleDelay is used when WORKERS_SETTLE_DELAY is not set.
const DefaultSettleDelay = 350 * time.Millisecond

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// ProjectID is the root identifier of the local history.
	ProjectID string
	// ProjectSecret is the snapshot cipher key material.
	ProjectSecret string
	// Token is the bearer token attached to pushes.
	Token string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// Address is the remote history location (http, https or file scheme).
	Address string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// LockPath is the lock file that serializes sync attempts of every client
// process sharing the database.
func (d ClientDB) LockPath() string {
	return d.DSN + ".lock"
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
	// SettleDelay is the pause between fetch and merge.
	SettleDelay time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the remote address and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the client-relevant part of cfg and fills defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	settle := cfg.Workers.SettleDelay
	if settle == 0 {
		settle = DefaultSettleDelay
	}

	return &ClientConfig{
		App: ClientApp{
			ProjectID:     cfg.App.ProjectID,
			ProjectSecret: cfg.App.ProjectSecret,
			Token:         cfg.App.Token,
		},
		Adapter: ClientAdapter{
			Address:        cfg.Adapter.Address,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			SettleDelay:  settle,
		},
	}
}
