package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/securevault/vaultcore/models"
)

const secretLength = 16

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	alphabet  = lowercase + uppercase + digits + symbols
)

// GenerateSecret produces a 16-character secret containing at least one
// lowercase letter, one uppercase letter, one digit, and one symbol. The
// remaining characters are drawn uniformly from the combined alphabet and
// the final order is randomly permuted. All randomness comes from the OS
// CSPRNG; users store and trust these values, so math/rand is not adequate.
func GenerateSecret() (string, error) {
	out := make([]byte, 0, secretLength)

	for _, class := range []string{lowercase, uppercase, digits, symbols} {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		out = append(out, ch)
	}

	for len(out) < secretLength {
		ch, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		out = append(out, ch)
	}

	// Fisher-Yates so the mandatory class characters do not sit at a
	// predictable position.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

// Strength scores a plaintext secret: one point each for length >= 8,
// length >= 12, and the presence of a lowercase letter, an uppercase letter,
// a digit, and a symbol. A score of 5 or more is strong, 3 or more is
// medium, anything less is weak. Deterministic, no side effects.
func Strength(secret string) models.Strength {
	var score int
	var rationale []string

	add := func(ok bool, reason string) {
		if ok {
			score++
			rationale = append(rationale, reason)
		}
	}

	add(len(secret) >= 8, "at least 8 characters")
	add(len(secret) >= 12, "at least 12 characters")
	add(strings.ContainsAny(secret, lowercase), "contains a lowercase letter")
	add(strings.ContainsAny(secret, uppercase), "contains an uppercase letter")
	add(strings.ContainsAny(secret, digits), "contains a digit")
	add(containsSymbol(secret), "contains a symbol")

	level := models.StrengthWeak
	switch {
	case score >= 5:
		level = models.StrengthStrong
	case score >= 3:
		level = models.StrengthMedium
	}

	return models.Strength{Level: level, Score: score, Rationale: rationale}
}

// containsSymbol reports whether secret has any character outside
// [A-Za-z0-9], matching the scoring rule rather than the generator's fixed
// symbol set.
func containsSymbol(secret string) bool {
	for _, r := range secret {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return true
		}
	}
	return false
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(v.Int64()), nil
}
