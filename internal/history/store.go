package history

import (
	"crypto/sha256"
	"fmt"
	"slices"
)

// Revision is an immutable unit of history. Callers receive copies; the
// store never hands out references into its own arena.
type Revision struct {
	Payload []byte
	Hash    Digest
}

// Handle addresses a revision inside one [Store]. Handles are stable for the
// lifetime of the store because entries are append-only; Reset invalidates them.
type Handle int

// PayloadValidator checks a payload against the editing layer's contract.
type PayloadValidator func(payload []byte) error

// Option configures a [Store].
type Option func(*Store)

// WithValidator installs the editing layer's payload validator. Append wraps
// any error it returns with [ErrInvalidPayload].
func WithValidator(v PayloadValidator) Option {
	return func(s *Store) {
		s.validate = v
	}
}

// Store is the ordered, content-addressed history of one project.
//
// A Store is not safe for concurrent use; owners serialize access.
type Store struct {
	rootKey string
	version int64

	entries []Revision
	index   map[Digest]Handle

	validate PayloadValidator
}

// NewStore creates an empty store at version 0 for the project rootKey.
func NewStore(rootKey string, opts ...Option) *Store {
	s := &Store{
		rootKey: rootKey,
		index:   make(map[Digest]Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RootKey returns the project id the store belongs to.
func (s *Store) RootKey() string {
	return s.rootKey
}

// Version returns the store-wide version counter.
func (s *Store) Version() int64 {
	return s.version
}

// Len returns the number of revisions.
func (s *Store) Len() int {
	return len(s.entries)
}

// Append hashes payload and appends a new revision. It does not change the
// version; versions only move on merge.
func (s *Store) Append(payload []byte) (Revision, error) {
	if len(payload) == 0 {
		return Revision{}, fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}
	if s.validate != nil {
		if err := s.validate(payload); err != nil {
			return Revision{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
	}

	rev := Revision{Payload: slices.Clone(payload), Hash: HashPayload(payload)}
	if _, ok := s.index[rev.Hash]; ok {
		return Revision{}, fmt.Errorf("%w: %s", ErrDuplicateRevision, rev.Hash.Short())
	}

	s.push(rev)
	return copyRevision(rev), nil
}

// push appends an already hashed revision.
func (s *Store) push(rev Revision) {
	s.index[rev.Hash] = Handle(len(s.entries))
	s.entries = append(s.entries, rev)
}

// At returns a copy of the revision addressed by h.
func (s *Store) At(h Handle) (Revision, bool) {
	if h < 0 || int(h) >= len(s.entries) {
		return Revision{}, false
	}
	return copyRevision(s.entries[h]), true
}

// Lookup returns the handle of the revision with the given content hash.
func (s *Store) Lookup(hash Digest) (Handle, bool) {
	h, ok := s.index[hash]
	return h, ok
}

// Contains reports whether a revision with the given content hash exists.
func (s *Store) Contains(hash Digest) bool {
	_, ok := s.index[hash]
	return ok
}

// Entries returns copies of all revisions in order.
func (s *Store) Entries() []Revision {
	out := make([]Revision, len(s.entries))
	for i, rev := range s.entries {
		out[i] = copyRevision(rev)
	}
	return out
}

// CalculateHash folds the content hashes of all entries, in order, into one
// digest: SHA256(domain ‖ 0x00 ‖ h1 ‖ h2 ‖ ...). It depends on nothing but the
// entry sequence.
func (s *Store) CalculateHash() Digest {
	h := sha256.New()
	h.Write([]byte(domainStore))
	h.Write([]byte{0x00})
	for _, rev := range s.entries {
		h.Write(rev.Hash[:])
	}

	var d Digest
	h.Sum(d[:0])
	return d
}

// IncrementVersion advances the version counter by one.
func (s *Store) IncrementVersion() {
	s.version++
}

// Reset clears all entries and sets the version back to 0, which represents
// "no remote history yet".
func (s *Store) Reset() {
	s.version = 0
	s.entries = nil
	s.index = make(map[Digest]Handle)
}

// Clone returns a deep copy of s sharing no memory with it.
func (s *Store) Clone() *Store {
	c := &Store{
		rootKey:  s.rootKey,
		version:  s.version,
		entries:  make([]Revision, 0, len(s.entries)),
		index:    make(map[Digest]Handle, len(s.entries)),
		validate: s.validate,
	}
	for _, rev := range s.entries {
		c.push(copyRevision(rev))
	}
	return c
}

func copyRevision(rev Revision) Revision {
	return Revision{Payload: slices.Clone(rev.Payload), Hash: rev.Hash}
}
