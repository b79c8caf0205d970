// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package adapter

import "strings"

// authMessages maps provider error codes to the user-facing messages shown
// by the presentation layer. Codes absent from the table fall through to a
// generic message.
var authMessages = map[string]string{
	CodeInvalidLoginCredentials: "Invalid email or password. Please check your credentials.",
	CodeEmailNotFound:           "No account found with this email. Please sign up first.",
	CodeInvalidPassword:         "Incorrect password. Please try again.",
	CodeInvalidEmail:            "Invalid email address format.",
	CodeUserDisabled:            "This account has been disabled.",
	CodeTooManyAttempts:         "Too many failed attempts. Please try again later.",
	CodeEmailExists:             "An account with this email already exists. Please sign in instead.",
	CodeWeakPassword:            "Password is too weak. Please use at least 6 characters.",
	CodeOperationNotAllowed:     "Email/password accounts are not enabled. Please contact support.",
	CodeNetworkFailure:          "Network error. Check your internet connection.",
}

const genericAuthMessage = "An error occurred. Please try again."

// UserMessage translates an identity-provider failure into the message the
// UI shows the user. Non-auth errors and unknown codes get the generic
// fallback so no internal detail leaks into the interface.
func UserMessage(err error) string {
	authErr, ok := AsAuthError(err)
	if !ok {
		return genericAuthMessage
	}

	// Some deployments suffix codes with details, e.g.
	// "TOO_MANY_ATTEMPTS_TRY_LATER : ...". Match on the bare code.
	code := strings.TrimSpace(strings.SplitN(authErr.Code, ":", 2)[0])
	if msg, ok := authMessages[code]; ok {
		return msg
	}
	return genericAuthMessage
}
