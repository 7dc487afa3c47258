package history

import "fmt"

// Outcome is the relative ordering of a local and a remote history.
type Outcome int

const (
	// UpToDate means equal versions and equal content; nothing to push.
	UpToDate Outcome = iota + 1

	// LocalAhead means the local history may be merged into the remote one
	// and pushed. It also covers equal versions with different content.
	LocalAhead

	// RemoteAhead means the remote version is strictly greater. Merging is
	// refused, since rebasing local edits onto newer remote content is not
	// supported.
	RemoteAhead
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case UpToDate:
		return "up-to-date"
	case LocalAhead:
		return "local-ahead"
	case RemoteAhead:
		return "remote-ahead"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Compare decides the relative ordering of local and remote by version
// counters and content hashes.
func Compare(local, remote *Store) Outcome {
	switch {
	case local.Version() > remote.Version():
		return LocalAhead
	case local.Version() < remote.Version():
		return RemoteAhead
	case local.CalculateHash() == remote.CalculateHash():
		return UpToDate
	default:
		return LocalAhead
	}
}

// CheckMergeable returns [ErrMergeRejected] unless o permits a merge.
// UpToDate is mergeable in principle; callers normally skip the merge.
func CheckMergeable(o Outcome) error {
	switch o {
	case LocalAhead, UpToDate:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrMergeRejected, o)
	}
}
