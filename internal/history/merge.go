package history

import "fmt"

// MergeWith absorbs other into s: every entry of s keeps its position and
// the entries of other whose hash s does not know yet are appended in
// other's order. The version becomes max(s.Version(), other.Version()).
//
// MergeWith does not bump the version; [Store.IncrementVersion] does.
func (s *Store) MergeWith(other *Store) {
	for _, rev := range other.entries {
		if s.Contains(rev.Hash) {
			continue
		}
		s.push(copyRevision(rev))
	}

	s.version = max(s.version, other.version)
}

// Merge builds the union of local and remote on a copy of remote and
// advances its version exactly once, to max(local, remote) + 1. Neither
// input is modified.
//
// It fails with [ErrMergeRejected] when remote is strictly ahead of local.
func Merge(local, remote *Store) (*Store, error) {
	if local.RootKey() != remote.RootKey() {
		return nil, fmt.Errorf("%w: merging %q into %q", ErrSchemaMismatch, local.RootKey(), remote.RootKey())
	}
	if err := CheckMergeable(Compare(local, remote)); err != nil {
		return nil, err
	}

	merged := remote.Clone()
	merged.MergeWith(local)
	merged.IncrementVersion()

	return merged, nil
}
