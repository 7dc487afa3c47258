package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/snapshot_cipher_mock.go -package=mock

// SnapshotCipher encrypts serialized history trees before transport and
// decrypts them on receipt. The key is derived from the per-project secret and
// bound to the project id, so the same secret used for two projects yields two
// unrelated keys.
//
// Scheme:
//
//	key  = HKDF-SHA256(secret, salt = projectID, info = "history-sync/snapshot/v1")
//	blob = nonce ‖ AES-256-GCM(key, nonce, plaintext)
type SnapshotCipher interface {
	// Encrypt seals plaintext with a fresh random nonce. Two calls with the
	// same input produce different blobs.
	Encrypt(plaintext, secret []byte, projectID string) ([]byte, error)

	// Decrypt opens a blob produced by Encrypt. Any authentication failure
	// (wrong secret, wrong project, truncated or tampered blob) is reported
	// as [ErrDecrypt].
	Decrypt(blob, secret []byte, projectID string) ([]byte, error)
}
