// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer messages used by the
// go-history-sync client when it reports the outcome of a sync attempt.
//
// All Msg* constants are human-readable strings written to the terminal or
// to log entries. Keeping them in one place ensures consistent wording
// between the interactive view and plain output.
package app

import "github.com/MKhiriev/go-history-sync/models"

const (
	// MsgAllDone is reported when the merged history was pushed and installed.
	MsgAllDone = "history synchronized"

	// MsgUpToDate is reported when the remote history already contains every
	// local revision and nothing was pushed.
	MsgUpToDate = "already up to date"

	// MsgCancelled is reported when the attempt was interrupted before a
	// stage boundary. Nothing was pushed or installed.
	MsgCancelled = "sync cancelled, nothing was changed"

	// MsgFetchHistoryFailed is reported when the remote snapshot could not be
	// downloaded, decrypted, or decoded. A wrong project key ends here too.
	MsgFetchHistoryFailed = "could not read the remote history (unreachable, corrupt, or encrypted with another key)"

	// MsgMergeFailed is reported when the remote history diverged from the
	// local one in a way the merge engine refuses to resolve.
	MsgMergeFailed = "remote history diverged and cannot be merged"

	// MsgUnauthorized is reported when the remote rejected the credentials.
	MsgUnauthorized = "not authorized to access the remote history"

	// MsgForbidden is reported when the remote refused the push for this
	// project or key. Local history is left unchanged.
	MsgForbidden = "push forbidden for this project or key"

	// MsgSyncFailed is reported when pushing or installing the merged history
	// failed.
	MsgSyncFailed = "could not push the merged history"

	// MsgSyncInProgress is reported when another attempt for the same project
	// is still running.
	MsgSyncInProgress = "a sync for this project is already running"
)

var stageMessages = map[models.SyncStage]string{
	models.StageAllDone:           MsgAllDone,
	models.StageUpToDate:          MsgUpToDate,
	models.StageCancelled:         MsgCancelled,
	models.StageFetchHistoryError: MsgFetchHistoryFailed,
	models.StageMergeError:        MsgMergeFailed,
	models.StageUnauthorizedError: MsgUnauthorized,
	models.StageForbiddenError:    MsgForbidden,
	models.StageSyncError:         MsgSyncFailed,
}

// StageMessage returns the message for a terminal stage, or the stage name
// for any other stage.
func StageMessage(stage models.SyncStage) string {
	if msg, ok := stageMessages[stage]; ok {
		return msg
	}
	return stage.String()
}
