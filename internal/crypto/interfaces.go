package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_mock.go -package=mock

// Codec is the pure transformation layer between plaintext secrets and the
// ciphertext envelopes persisted in the document store. The symmetric key is
// injected at construction; a single codec instance serves the whole process.
//
// Encrypt is non-deterministic: two calls with the same plaintext may
// legitimately produce different envelopes, and callers must not assume
// repeatable output. Both operations are synchronous and side-effect free.
type Codec interface {
	// Encrypt transforms plaintext into a self-describing ciphertext
	// envelope. It never returns plaintext on failure; errors wrap
	// ErrEncrypt.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. A malformed envelope or a key mismatch is
	// a hard error wrapping ErrDecrypt; the returned plaintext is never
	// garbage.
	Decrypt(envelope string) (string, error)
}
