// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// HistoryTree is the persisted and transported form of one project's revision
// history. The whole tree is keyed by the project-root tag "history"; a payload
// without that tag is not a history snapshot at all.
//
// Serialized with encoding/json, so field order and base64 payload encoding are
// stable across processes.
type HistoryTree struct {
	History *HistoryRoot `json:"history"`
}

// HistoryRoot holds the store-level attributes and the ordered revision list.
type HistoryRoot struct {
	// ProjectID is the root identifier the tree belongs to.
	ProjectID string `json:"project_id"`

	// Version is the store-wide version counter.
	Version int64 `json:"version"`

	// Revisions are stored in causal (insertion) order.
	Revisions []RevisionEntry `json:"revisions"`
}

// RevisionEntry is one serialized revision: opaque payload bytes plus the
// content hash recorded when the revision was created (hex encoded).
type RevisionEntry struct {
	Payload []byte `json:"payload"`
	Hash    string `json:"hash"`
}

// HistoryBlob is an encrypted history tree as stored by the history server.
// The server never decrypts Blob; KeyHash identifies the key the blob was
// encrypted with so that a push under a different key can be refused.
//
// On push, BaseETag is the ETag of the blob the pusher merged against. The
// push only succeeds while that blob is still the stored one. NoHistoryETag
// asks for nothing to be stored yet, and an empty BaseETag skips the check.
type HistoryBlob struct {
	RemoteID string `json:"remote_id"`
	Blob     []byte `json:"-"`
	KeyHash  string `json:"key_hash"`
	ETag     string `json:"etag"`
	BaseETag string `json:"-"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NoHistoryETag is the base of a push made when no history was stored.
const NoHistoryETag = "*"

// BlobETag returns the ETag of an encrypted history blob: hex SHA-256 of its
// bytes.
func BlobETag(blob []byte) string {
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}

// PushReceipt is returned by the history server after a snapshot is stored.
type PushReceipt struct {
	RemoteID string `json:"remote_id"`
	Size     int    `json:"size"`
}
