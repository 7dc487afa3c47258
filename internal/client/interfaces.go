// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-history-sync/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the subcommand named by args[0] and blocks until it exits.
	Run(ctx context.Context, args []string) error
}

// SyncView presents a running sync attempt and the build information.
type SyncView interface {
	// RunSync consumes events until the stream is closed and returns the
	// terminal event. cancel interrupts the attempt.
	RunSync(ctx context.Context, projectID string, events <-chan models.SyncEvent, cancel context.CancelFunc) (models.SyncEvent, error)

	// BuildInfo renders the build information of the binary.
	BuildInfo() string
}
