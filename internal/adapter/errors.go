package adapter

import "errors"

var (
	// ErrTransport means the remote could not be reached or the transfer was
	// interrupted.
	ErrTransport = errors.New("transport failure")

	ErrUnauthorized     = errors.New("remote rejected credentials")
	ErrForbidden        = errors.New("remote refused access")
	ErrNotFound         = errors.New("remote snapshot not found")
	ErrPayloadTooLarge  = errors.New("snapshot too large for remote")
	ErrHistoryChanged   = errors.New("remote snapshot changed since fetch")
	ErrUnexpectedStatus = errors.New("unexpected remote status")

	// ErrUnsupportedScheme is returned for remote addresses that are neither
	// http(s) nor file URLs.
	ErrUnsupportedScheme = errors.New("unsupported remote address scheme")
)
