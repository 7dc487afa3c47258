// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of go-history-sync.
//
// It wires the local project, the sync engine, the progress view, and the
// background sync job into the commit, log, sync, watch, and version
// subcommands.
package client
