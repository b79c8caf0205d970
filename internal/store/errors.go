// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureVault Authors

package store

import "errors"

var (
	// ErrPersistence wraps every network, permission, or server failure
	// surfaced by a credential store implementation.
	ErrPersistence = errors.New("persistence failure")

	// ErrRecordNotFound is returned by Update when the target record does
	// not exist. Delete deliberately does not use it; missing deletes are
	// a no-op success.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidDocument marks a stored document that fails schema
	// validation on ingress. Such documents are quarantined, never
	// propagated into snapshots.
	ErrInvalidDocument = errors.New("invalid stored document")
)
