package history

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-history-sync/models"
)

// Tree converts s into its external tree form.
func (s *Store) Tree() models.HistoryTree {
	revisions := make([]models.RevisionEntry, len(s.entries))
	for i, rev := range s.entries {
		revisions[i] = models.RevisionEntry{
			Payload: rev.Payload,
			Hash:    rev.Hash.String(),
		}
	}

	return models.HistoryTree{History: &models.HistoryRoot{
		ProjectID: s.rootKey,
		Version:   s.version,
		Revisions: revisions,
	}}
}

// FromTree rebuilds a store from its tree form. The tree must carry the
// project root expectedRoot, and every recorded hash must match its payload.
func FromTree(tree models.HistoryTree, expectedRoot string, opts ...Option) (*Store, error) {
	root := tree.History
	if root == nil {
		return nil, fmt.Errorf("%w: missing project root", ErrSchemaMismatch)
	}
	if root.ProjectID != expectedRoot {
		return nil, fmt.Errorf("%w: root %q, expected %q", ErrSchemaMismatch, root.ProjectID, expectedRoot)
	}
	if root.Version < 0 {
		return nil, fmt.Errorf("%w: negative version %d", ErrSchemaMismatch, root.Version)
	}

	s := NewStore(root.ProjectID, opts...)
	s.version = root.Version

	for i, entry := range root.Revisions {
		recorded, err := ParseDigest(entry.Hash)
		if err != nil {
			return nil, fmt.Errorf("%w: revision %d: %w", ErrCorruptHistory, i, err)
		}
		if actual := HashPayload(entry.Payload); actual != recorded {
			return nil, fmt.Errorf("%w: revision %d: recorded %s, actual %s",
				ErrCorruptHistory, i, recorded.Short(), actual.Short())
		}
		if s.Contains(recorded) {
			return nil, fmt.Errorf("%w: revision %d duplicates %s", ErrCorruptHistory, i, recorded.Short())
		}
		s.push(Revision{Payload: entry.Payload, Hash: recorded})
	}

	return s, nil
}

// Marshal serializes s into the tree format. The output is a pure function of
// the store's root key, version and entries.
func Marshal(s *Store) ([]byte, error) {
	data, err := json.Marshal(s.Tree())
	if err != nil {
		return nil, fmt.Errorf("marshal history tree: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a tree produced by [Marshal] and validates it against the
// expected project root.
func Unmarshal(data []byte, expectedRoot string, opts ...Option) (*Store, error) {
	var tree models.HistoryTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: decode history tree: %w", ErrSchemaMismatch, err)
	}
	return FromTree(tree, expectedRoot, opts...)
}
