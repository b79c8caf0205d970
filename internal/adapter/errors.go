package adapter

import (
	"errors"
	"fmt"
)

// ErrNotSignedIn is returned by IDToken when no session is active.
var ErrNotSignedIn = errors.New("no active session")

// Provider error codes the adapter recognizes. Sign-in and sign-up share
// the INVALID_EMAIL and NETWORK_REQUEST_FAILED codes.
const (
	CodeInvalidLoginCredentials = "INVALID_LOGIN_CREDENTIALS"
	CodeEmailNotFound           = "EMAIL_NOT_FOUND"
	CodeInvalidPassword         = "INVALID_PASSWORD"
	CodeInvalidEmail            = "INVALID_EMAIL"
	CodeUserDisabled            = "USER_DISABLED"
	CodeTooManyAttempts         = "TOO_MANY_ATTEMPTS_TRY_LATER"
	CodeEmailExists             = "EMAIL_EXISTS"
	CodeWeakPassword            = "WEAK_PASSWORD"
	CodeOperationNotAllowed     = "OPERATION_NOT_ALLOWED"
	CodeNetworkFailure          = "NETWORK_REQUEST_FAILED"
)

// AuthError is an identity-provider failure. Code is the provider-defined
// error code; [UserMessage] maps it to a human-readable message. Non-fatal
// and retryable by the user.
type AuthError struct {
	Code  string
	cause error
}

func (e *AuthError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("auth failure %s: %v", e.Code, e.cause)
	}
	return "auth failure " + e.Code
}

func (e *AuthError) Unwrap() error { return e.cause }

// NewAuthError builds an AuthError for code, optionally wrapping cause.
func NewAuthError(code string, cause error) *AuthError {
	return &AuthError{Code: code, cause: cause}
}

// AsAuthError unwraps err into an *AuthError if there is one in the chain.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
