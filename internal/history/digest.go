package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes keep revision hashes and store hashes from colliding.
const (
	domainRevision = "history-sync/revision/v1"
	domainStore    = "history-sync/store/v1"
)

// Digest identifies a payload or the whole content of a store.
type Digest [sha256.Size]byte

// String returns the lowercase hex form of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters of d, for logs and listings.
func (d Digest) Short() string {
	return d.String()[:12]
}

// IsZero reports whether d is the zero value.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// ParseDigest decodes the hex form produced by [Digest.String].
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("decode digest: %w", err)
	}
	if len(raw) != len(d) {
		return d, fmt.Errorf("decode digest: want %d bytes, got %d", len(d), len(raw))
	}
	copy(d[:], raw)
	return d, nil
}

// HashPayload computes the content hash of a revision payload:
// SHA256(domain ‖ 0x00 ‖ payload).
func HashPayload(payload []byte) Digest {
	h := sha256.New()
	h.Write([]byte(domainRevision))
	h.Write([]byte{0x00})
	h.Write(payload)

	var d Digest
	h.Sum(d[:0])
	return d
}
