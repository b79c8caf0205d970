// Package vaultcore is an embeddable password vault: Firebase-backed
// accounts, encrypted credential storage in Cloud Firestore, live snapshot
// subscriptions with an offline cache, and password generation and scoring.
//
// The embedding UI obtains a [Vault] through [NewApp], drives it with the
// lifecycle and credential operations, and renders the record snapshots
// delivered to its OnChange listener. Configuration comes from environment
// variables, command-line flags and an optional JSON file; see [NewApp].
package vaultcore

import (
	"github.com/securevault/vaultcore/internal/adapter"
	"github.com/securevault/vaultcore/internal/client"
	"github.com/securevault/vaultcore/internal/clipboard"
	"github.com/securevault/vaultcore/internal/service"
)

// Vault is the session-scoped entry point for all vault operations.
type Vault = service.Vault

// App owns an assembled vault and its resources.
type App = client.App

// Clipboard is the one-shot text write capability the UI uses after
// CopySecret returns plaintext.
type Clipboard = clipboard.Writer

// Errors surfaced by [Vault] operations.
var (
	ErrNotAuthenticated = service.ErrNotAuthenticated
	ErrAlreadySignedIn  = service.ErrAlreadySignedIn
	ErrRecordNotFound   = service.ErrRecordNotFound
	ErrValidation       = service.ErrValidation
)

// NewApp assembles a vault from the process configuration. Callers Run the
// app, use its Vault, and Close it on shutdown.
func NewApp() (*App, error) {
	return client.NewApp()
}

// AuthErrorMessage translates a sign-in or sign-up failure into the message
// the UI shows the user. Unknown failures get a generic fallback.
func AuthErrorMessage(err error) string {
	return adapter.UserMessage(err)
}
