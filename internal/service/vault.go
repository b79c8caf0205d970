package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/securevault/vaultcore/internal/adapter"
	"github.com/securevault/vaultcore/internal/crypto"
	"github.com/securevault/vaultcore/internal/logger"
	"github.com/securevault/vaultcore/internal/store"
	"github.com/securevault/vaultcore/internal/validators"
	"github.com/securevault/vaultcore/models"
)

type vaultService struct {
	provider  adapter.IdentityProvider
	store     store.CredentialStore
	codec     crypto.Codec
	validator validators.Validator
	log       *logger.Logger

	mu       sync.RWMutex
	records  []models.Credential
	onChange []func([]models.Credential)
	onError  []func(error)

	// snapshots carries the latest record set from the subscription into
	// the event loop; stale intermediate sets are dropped, never queued.
	snapshots chan []models.Credential
	errs      chan error

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewVault assembles the vault controller. The loop is idle until Start is
// called.
func NewVault(provider adapter.IdentityProvider, credStore store.CredentialStore, codec crypto.Codec, log *logger.Logger) Vault {
	return &vaultService{
		provider:  provider,
		store:     credStore,
		codec:     codec,
		validator: validators.NewCredentialValidator(),
		log:       log,
		snapshots: make(chan []models.Credential, 1),
		errs:      make(chan error, 8),
	}
}

// Start implements Vault. It stops any previously running loop, then
// launches the event loop goroutine. The loop exits when ctx is cancelled
// or Stop is called.
func (s *vaultService) Start(ctx context.Context) {
	s.Stop()

	s.runMu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.runMu.Unlock()

	go s.run(loopCtx)
}

// Stop implements Vault. It cancels the event loop's context and blocks
// until the goroutine and its subscription have fully exited. Safe to call
// when the loop is not running (no-op in that case).
func (s *vaultService) Stop() {
	s.runMu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.runMu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// run is the event loop. It is the only goroutine that touches the live
// subscription, so teardown and resubscribe never race.
func (s *vaultService) run(ctx context.Context) {
	defer s.wg.Done()

	var sub store.Subscription
	if identity := s.provider.Identity(); identity != nil {
		sub = s.subscribe(ctx, identity)
	}

	defer func() {
		if sub != nil {
			sub.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case identity := <-s.provider.Changes():
			sub = s.switchOwner(ctx, sub, identity)
		case records := <-s.snapshots:
			s.applySnapshot(records)
		case err := <-s.errs:
			s.notifyError(err)
		}
	}
}

// switchOwner tears down the previous owner's subscription, clears the
// visible snapshot, and subscribes for the new owner when one signed in.
func (s *vaultService) switchOwner(ctx context.Context, sub store.Subscription, identity *models.Identity) store.Subscription {
	if sub != nil {
		sub.Stop()
		// A snapshot pushed before Stop completed may still be queued.
		select {
		case <-s.snapshots:
		default:
		}
	}

	s.applySnapshot(nil)

	if identity == nil {
		s.log.Info().Msg("session closed, snapshot cleared")
		return nil
	}
	return s.subscribe(ctx, identity)
}

func (s *vaultService) subscribe(ctx context.Context, identity *models.Identity) store.Subscription {
	sub, err := s.store.SubscribeByOwner(ctx, identity.UID, s.pushSnapshot, s.pushError)
	if err != nil {
		s.log.Error().Err(err).Str("uid", identity.UID).Msg("subscribe failed")
		s.notifyError(fmt.Errorf("subscribe records: %w", err))
		return nil
	}
	s.log.Debug().Str("uid", identity.UID).Msg("subscribed to records")
	return sub
}

// pushSnapshot hands a record set to the event loop without blocking the
// subscription's delivery goroutine. Only the newest set matters, so a
// still-queued older one is discarded first.
func (s *vaultService) pushSnapshot(records []models.Credential) {
	for {
		select {
		case s.snapshots <- records:
			return
		default:
			select {
			case <-s.snapshots:
			default:
			}
		}
	}
}

// pushError forwards a subscription failure; errors are dropped when the
// loop is saturated rather than blocking delivery.
func (s *vaultService) pushError(err error) {
	select {
	case s.errs <- err:
	default:
	}
}

func (s *vaultService) applySnapshot(records []models.Credential) {
	s.mu.Lock()
	s.records = records
	listeners := append([]func([]models.Credential){}, s.onChange...)
	s.mu.Unlock()

	for _, fn := range listeners {
		s.invoke(func() { fn(copyRecords(records)) })
	}
}

func (s *vaultService) notifyError(err error) {
	s.mu.RLock()
	listeners := append([]func(error){}, s.onError...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		s.invoke(func() { fn(err) })
	}
}

// invoke runs a listener; a panicking listener must not take the event loop
// down with it.
func (s *vaultService) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("listener panic recovered")
		}
	}()
	fn()
}

func (s *vaultService) OnChange(fn func(records []models.Credential)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *vaultService) OnError(fn func(err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = append(s.onError, fn)
}

func copyRecords(records []models.Credential) []models.Credential {
	return append([]models.Credential(nil), records...)
}
