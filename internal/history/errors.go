package history

import "errors"

var (
	// ErrInvalidPayload is returned by Append when a payload is empty or is
	// rejected by the editing layer's validator.
	ErrInvalidPayload = errors.New("invalid revision payload")

	// ErrDuplicateRevision is returned by Append when a revision with the same
	// content hash is already part of the store.
	ErrDuplicateRevision = errors.New("revision already exists")

	// ErrSchemaMismatch is returned by Unmarshal when the tree has no project
	// root or the root belongs to a different project.
	ErrSchemaMismatch = errors.New("history schema mismatch")

	// ErrCorruptHistory is returned by Unmarshal when a recorded content hash
	// does not match its payload.
	ErrCorruptHistory = errors.New("history is corrupt")

	// ErrMergeRejected is returned when the remote history is strictly ahead
	// of the local one. Local edits are never dropped to resolve it.
	ErrMergeRejected = errors.New("merge rejected: remote history is ahead")
)
