package client

import "errors"

var (
	// ErrUnknownCommand is returned for an empty or unknown subcommand.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidArguments is returned when a subcommand gets the wrong
	// number or shape of arguments.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrProjectLocked is returned when another process holds the sync lock
	// of the local database.
	ErrProjectLocked = errors.New("local history is locked by another sync")

	// ErrSyncFailed is returned when an attempt ends in a terminal error stage.
	ErrSyncFailed = errors.New("sync failed")
)
