// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package history implements the content-addressed revision store of one
// project, the comparator that decides whether two histories may be merged,
// and the deterministic union merge.
//
// Merge policy: entries already known to the receiving store keep their
// position; entries unique to the other side are appended after them, in the
// other side's order. This favours unseen local changes as strictly later than
// anything the remote knew about. It is not a causal reordering.
//
// Comparison policy: equal versions with different content hashes compare as
// [LocalAhead]. The side that initiates synchronization wins the tie and the
// differently shaped remote is replaced by the merge result.
package history
