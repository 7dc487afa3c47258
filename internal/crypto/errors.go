package crypto

import "errors"

var (
	// ErrDecrypt means a snapshot could not be opened: the key is wrong or
	// the payload is corrupt. The two cases are indistinguishable by design of
	// authenticated encryption.
	ErrDecrypt = errors.New("snapshot decryption failed (wrong key?)")

	// ErrEmptySecret is returned when no project secret was supplied.
	ErrEmptySecret = errors.New("empty project secret")
)
