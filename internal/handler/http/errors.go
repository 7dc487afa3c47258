// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the middleware chain. Callers can match against
// them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrProjectNotInToken is returned when a valid token is not scoped to the
	// remote id named in the request path.
	ErrProjectNotInToken = errors.New("token is not scoped to this project")

	// ErrMissingKeyHash is returned when a push carries no X-Key-Hash header.
	ErrMissingKeyHash = errors.New("missing `X-Key-Hash` header")

	// ErrMalformedKeyHash is returned when X-Key-Hash is not a hex SHA-256 digest.
	ErrMalformedKeyHash = errors.New("malformed `X-Key-Hash` header")

	// ErrMissingUpload is returned when a push carries neither a multipart
	// "file" field nor a raw body.
	ErrMissingUpload = errors.New("no history blob in request")
)
