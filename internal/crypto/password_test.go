package crypto

import (
	"strings"
	"testing"

	"github.com/securevault/vaultcore/models"
)

func TestGenerateSecret_LengthAndClasses(t *testing.T) {
	for i := 0; i < 100; i++ {
		secret, err := GenerateSecret()
		if err != nil {
			t.Fatalf("GenerateSecret error: %v", err)
		}
		if len(secret) != 16 {
			t.Fatalf("length = %d, want 16", len(secret))
		}
		if !strings.ContainsAny(secret, lowercase) {
			t.Fatalf("secret %q has no lowercase letter", secret)
		}
		if !strings.ContainsAny(secret, uppercase) {
			t.Fatalf("secret %q has no uppercase letter", secret)
		}
		if !strings.ContainsAny(secret, digits) {
			t.Fatalf("secret %q has no digit", secret)
		}
		if !strings.ContainsAny(secret, symbols) {
			t.Fatalf("secret %q has no symbol", secret)
		}
	}
}

func TestGenerateSecret_NoDuplicates(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		secret, err := GenerateSecret()
		if err != nil {
			t.Fatalf("GenerateSecret error: %v", err)
		}
		if _, dup := seen[secret]; dup {
			t.Fatalf("duplicate secret after %d generations: %q", i, secret)
		}
		seen[secret] = struct{}{}
	}
}

func TestStrength_Levels(t *testing.T) {
	cases := []struct {
		secret string
		level  models.StrengthLevel
	}{
		{"", models.StrengthWeak},
		{"abc", models.StrengthWeak},
		{"abcdefgh1", models.StrengthMedium},
		{"Abcdefgh123!@", models.StrengthStrong},
		{"A1!aA1!aA1!a", models.StrengthStrong},
	}

	for _, tc := range cases {
		got := Strength(tc.secret)
		if got.Level != tc.level {
			t.Fatalf("Strength(%q).Level = %s, want %s", tc.secret, got.Level, tc.level)
		}
		if len(got.Rationale) != got.Score {
			t.Fatalf("Strength(%q): %d rationale entries for score %d", tc.secret, len(got.Rationale), got.Score)
		}
	}
}

func TestStrength_Deterministic(t *testing.T) {
	a := Strength("Abcdefgh123!@")
	b := Strength("Abcdefgh123!@")

	if a.Level != b.Level || a.Score != b.Score {
		t.Fatalf("Strength is not deterministic: %+v vs %+v", a, b)
	}
}
