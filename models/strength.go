// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package models

// StrengthLevel classifies how resistant a secret is to guessing.
type StrengthLevel string

const (
	StrengthWeak   StrengthLevel = "weak"
	StrengthMedium StrengthLevel = "medium"
	StrengthStrong StrengthLevel = "strong"
)

// Text returns the badge label shown next to a stored credential.
func (l StrengthLevel) Text() string {
	switch l {
	case StrengthStrong:
		return "Strong"
	case StrengthMedium:
		return "Medium"
	default:
		return "Weak"
	}
}

// Strength is the result of scoring a plaintext secret. Score counts the
// satisfied criteria; Rationale names them so the UI can explain the badge.
type Strength struct {
	Level     StrengthLevel
	Score     int
	Rationale []string
}
