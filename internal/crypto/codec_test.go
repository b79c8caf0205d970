package crypto

import (
	"errors"
	"testing"
)

func newTestCodec(t *testing.T, passphrase string) Codec {
	t.Helper()
	c, err := NewAESCodec(passphrase)
	if err != nil {
		t.Fatalf("NewAESCodec error: %v", err)
	}
	return c
}

func TestNewAESCodec_EmptyPassphrase(t *testing.T) {
	_, err := NewAESCodec("")
	if !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("error = %v, want ErrEmptyKey", err)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t, "SecureVault2024")

	for _, plaintext := range []string{
		"hunter2",
		"correct horse battery staple",
		"пароль с юникодом 🔐",
		"a",
	} {
		envelope, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", plaintext, err)
		}
		if envelope == plaintext {
			t.Fatalf("envelope equals plaintext for %q", plaintext)
		}

		got, err := c.Decrypt(envelope)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if got != plaintext {
			t.Fatalf("round trip = %q, want %q", got, plaintext)
		}
	}
}

func TestCodec_EncryptIsNonDeterministic(t *testing.T) {
	c := newTestCodec(t, "SecureVault2024")

	e1, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	e2, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if e1 == e2 {
		t.Fatalf("expected distinct envelopes for repeated plaintext")
	}

	for _, e := range []string{e1, e2} {
		got, err := c.Decrypt(e)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if got != "same plaintext" {
			t.Fatalf("Decrypt = %q, want %q", got, "same plaintext")
		}
	}
}

func TestCodec_WrongKeyIsHardError(t *testing.T) {
	c1 := newTestCodec(t, "key-one")
	c2 := newTestCodec(t, "key-two")

	envelope, err := c1.Encrypt("top secret")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := c2.Decrypt(envelope)
	if !errors.Is(err, ErrDecrypt) {
		t.Fatalf("error = %v, want ErrDecrypt", err)
	}
	if got != "" {
		t.Fatalf("Decrypt returned %q on key mismatch, want empty", got)
	}
}

func TestCodec_MalformedEnvelope(t *testing.T) {
	c := newTestCodec(t, "SecureVault2024")

	for name, envelope := range map[string]string{
		"not base64":  "%%%not-base64%%%",
		"too short":   "AAAA",
		"empty":       "",
		"random blob": "dGhpcyBpcyBub3QgYSB2YWxpZCBlbnZlbG9wZQ==",
	} {
		if _, err := c.Decrypt(envelope); !errors.Is(err, ErrDecrypt) {
			t.Fatalf("%s: error = %v, want ErrDecrypt", name, err)
		}
	}
}

func TestCodec_EmptyPlaintextEnvelopeRejected(t *testing.T) {
	c := newTestCodec(t, "SecureVault2024")

	envelope, err := c.Encrypt("")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	// Empty secrets are rejected before encryption by the controller; an
	// envelope that decodes to nothing is therefore never trusted.
	if _, err = c.Decrypt(envelope); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("error = %v, want ErrDecrypt for empty plaintext", err)
	}
}
