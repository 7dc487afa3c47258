package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildStore creates a store for root at the given version holding payloads in order.
func buildStore(t *testing.T, root string, version int64, payloads ...string) *Store {
	t.Helper()
	s := NewStore(root)
	for _, p := range payloads {
		_, err := s.Append([]byte(p))
		require.NoError(t, err)
	}
	for range version {
		s.IncrementVersion()
	}
	return s
}

func payloadsOf(s *Store) []string {
	out := make([]string, 0, s.Len())
	for _, rev := range s.Entries() {
		out = append(out, string(rev.Payload))
	}
	return out
}
