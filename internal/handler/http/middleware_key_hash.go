package http

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/MKhiriev/go-history-sync/internal/adapter"
	"github.com/MKhiriev/go-history-sync/internal/logger"
)

// requireKeyHash rejects with 400 a push whose X-Key-Hash header is missing
// or is not a hex SHA-256 digest. The stored key hash is compared later by
// the history service.
func (h *Handler) requireKeyHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		keyHash := r.Header.Get(adapter.KeyHashHeader)
		if keyHash == "" {
			log.Err(ErrMissingKeyHash).Str("func", "*Handler.requireKeyHash").Send()
			http.Error(w, ErrMissingKeyHash.Error(), http.StatusBadRequest)
			return
		}

		if !isHexDigest(keyHash) {
			log.Err(ErrMalformedKeyHash).
				Str("func", "*Handler.requireKeyHash").
				Str("key_hash", keyHash).
				Send()
			http.Error(w, ErrMalformedKeyHash.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isHexDigest(s string) bool {
	raw, err := hex.DecodeString(s)
	return err == nil && len(raw) == sha256.Size
}
