// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used by the sync engine to move
// encrypted history snapshots to and from a remote location.
//
// The primary abstraction is [Transport], which decouples the orchestrator
// from the underlying protocol. Two implementations ship with the package:
// an HTTP/REST one talking to the history server ([NewHTTPTransport]) and a
// file one writing snapshots into a shared directory ([NewFileTransport]).
// [NewTransport] picks one by the scheme of the configured address.
//
// A transport reports remote-side refusals as status codes in [Response]; only
// failures to reach the remote at all are returned as errors ([ErrTransport]).
// [StatusError] maps status codes to the sentinel values in errors.go so that
// callers can use [errors.Is] (e.g. [ErrForbidden] for 403).
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// ProgressFunc receives byte counters of a running transfer. total is -1 when
// the size is not known up front.
type ProgressFunc func(transferred, total int64)

// Response is the outcome of a request that reached the remote.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport moves opaque snapshot blobs to and from a URL.
type Transport interface {
	// Fetch downloads the snapshot stored at url. A missing snapshot is not an
	// error: it is reported as a 404 response.
	Fetch(ctx context.Context, url string, progress ProgressFunc) (Response, error)

	// Push uploads body to url, replacing the snapshot the caller last fetched.
	// base is the hex SHA-256 of that snapshot (models.BlobETag), or "" when
	// nothing was stored. A remote holding something else answers 412 and keeps its copy.
	Push(ctx context.Context, url string, body []byte, base string, progress ProgressFunc) (Response, error)
}
