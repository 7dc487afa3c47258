// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by both binaries. Role-specific checks live in
// [ClientConfig.validate] and [StructuredConfig.ValidateServer].
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.SyncInterval < 0 || cfg.Workers.SettleDelay < 0 {
		return ErrInvalidWorkerConfigs
	}
	if cfg.Server.MaxUploadSize < 0 {
		return ErrInvalidAppConfigs
	}
	return nil
}

// ValidateServer checks settings required to run the history server.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.Address == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SettleDelay < 0 || cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.ProjectID == "" || cfg.App.ProjectSecret == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
