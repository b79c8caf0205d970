package crypto

import "errors"

var (
	ErrEncrypt = errors.New("encryption failed")
	ErrDecrypt = errors.New("decryption failed")

	ErrEmptyKey = errors.New("empty encryption key")
)
