package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidSyncRequest is returned by ClientSyncService.Start when the
	// request is incomplete or its local snapshot cannot be decoded.
	ErrInvalidSyncRequest = errors.New("invalid sync request")

	// ErrSyncInProgress is returned by ClientSyncService.Start while another
	// attempt for the same project has not reached a terminal stage yet.
	ErrSyncInProgress = errors.New("sync already in progress for this project")

	ErrHistoryNotFound  = errors.New("history not found")
	ErrKeyHashMismatch  = errors.New("history is encrypted under a different key")
	ErrPayloadTooLarge  = errors.New("history blob exceeds the upload limit")
	ErrHistoryChanged   = errors.New("history changed since it was fetched, fetch and merge again")
	ErrProjectForbidden = errors.New("token is not scoped to this project")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
