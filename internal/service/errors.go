package service

import "errors"

var (
	// ErrNotAuthenticated rejects credential operations while signed out.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAlreadySignedIn rejects SignIn while a session is active. The
	// caller signs out first.
	ErrAlreadySignedIn = errors.New("a session is already active")

	// ErrRecordNotFound reports an operation against a record ID that is
	// not in the vault.
	ErrRecordNotFound = errors.New("credential not found")

	// ErrValidation wraps input validation failures on create and edit.
	ErrValidation = errors.New("invalid credential input")
)
