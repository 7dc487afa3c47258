package models

import "time"

// SyncStage is a state of the synchronization state machine.
type SyncStage string

const (
	StageIdle         SyncStage = "idle"
	StageFetchHistory SyncStage = "fetchHistory"
	StageMerge        SyncStage = "merge"
	StageSync         SyncStage = "sync"

	StageAllDone  SyncStage = "allDone"
	StageUpToDate SyncStage = "upToDate"

	StageFetchHistoryError SyncStage = "fetchHistoryError"
	StageMergeError        SyncStage = "mergeError"
	StageUnauthorizedError SyncStage = "unauthorizedError"
	StageForbiddenError    SyncStage = "forbiddenError"
	StageSyncError         SyncStage = "syncError"

	// StageCancelled ends an attempt whose context was cancelled before a
	// stage boundary. Nothing is pushed or installed.
	StageCancelled SyncStage = "cancelled"
)

// IsTerminal reports whether no further transition can follow s.
func (s SyncStage) IsTerminal() bool {
	switch s {
	case StageAllDone, StageUpToDate, StageCancelled:
		return true
	}
	return s.IsError()
}

// IsError reports whether s is one of the terminal error states.
func (s SyncStage) IsError() bool {
	switch s {
	case StageFetchHistoryError, StageMergeError, StageUnauthorizedError,
		StageForbiddenError, StageSyncError:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (s SyncStage) String() string {
	return string(s)
}

// SyncRequest describes one synchronization attempt.
type SyncRequest struct {
	// ProjectID is the root identifier of the history being synchronized.
	ProjectID string

	// URL addresses the remote snapshot for both fetch and push.
	URL string

	// Secret is the per-project key material for the snapshot cipher.
	Secret []byte

	// LocalSnapshot is the serialized (unencrypted) local history tree.
	LocalSnapshot []byte
}

// SyncEvent is emitted by the synchronization engine on every stage
// transition and on byte progress during fetch and push.
type SyncEvent struct {
	SessionID string
	Stage     SyncStage

	// Transferred and Total are byte counters of the current transfer.
	// Total is -1 when the size is not known up front.
	Transferred int64
	Total       int64

	// Err is set on terminal error stages.
	Err error

	At time.Time
}

// Terminal reports whether e is the final event of an attempt.
func (e SyncEvent) Terminal() bool {
	return e.Stage.IsTerminal()
}
