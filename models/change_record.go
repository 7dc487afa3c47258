package models

import (
	"encoding/json"
	"time"
)

// Editing operations recorded in [ChangeRecord.Action].
const (
	ActionPatternClipInsert = "patternClipInsert"
	ActionPatternClipRemove = "patternClipRemove"
	ActionPatternClipMove   = "patternClipMove"
	ActionPatternEdit       = "patternEdit"
	ActionTrackInsert       = "trackInsert"
	ActionTrackRemove       = "trackRemove"
	ActionTrackUpdate       = "trackUpdate"
	ActionProjectUpdate     = "projectUpdate"
)

// ChangeRecord is a single serialized edit produced by the editing layer
// (track and pattern actions). Its JSON encoding is the payload of one revision.
type ChangeRecord struct {
	// ID uniquely identifies the edit, which also keeps the content hashes of
	// two otherwise identical edits distinct.
	ID string `json:"id"`

	// Action names the editing operation, e.g. "patternClipInsert".
	Action string `json:"action"`

	// TrackID is the track the action applies to. Empty for project-wide actions.
	TrackID string `json:"track_id,omitempty"`

	// Data is the action-specific body, opaque to the history engine.
	Data json.RawMessage `json:"data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// RevisionInfo is a read-only view of one committed revision, safe to hand to
// presentation code.
type RevisionInfo struct {
	Index  int          `json:"index"`
	Hash   string       `json:"hash"`
	Record ChangeRecord `json:"record"`
}
