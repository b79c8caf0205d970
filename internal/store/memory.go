package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/securevault/vaultcore/models"
)

// memoryStore is an in-process implementation of [CredentialStore] with real
// push subscriptions. It backs the offline/demo mode and every store-level
// test; the snapshot contract matches the production store exactly.
type memoryStore struct {
	clock func() time.Time

	mu      sync.Mutex
	records map[string]models.Credential
	subs    map[*memorySubscription]struct{}
}

// NewMemoryStore returns an empty in-memory credential store. Timestamps are
// stamped with the store's own clock, playing the role of server time.
func NewMemoryStore() CredentialStore {
	return newMemoryStore()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clock:   func() time.Time { return time.Now().UTC() },
		records: make(map[string]models.Credential),
		subs:    make(map[*memorySubscription]struct{}),
	}
}

func (m *memoryStore) Create(ctx context.Context, ownerID string, fields models.CredentialFields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if ownerID == "" {
		return "", fmt.Errorf("%w: empty owner id", ErrPersistence)
	}

	m.mu.Lock()
	now := m.clock()
	record := models.Credential{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Website:    fields.Website,
		WebsiteURL: fields.WebsiteURL,
		Username:   fields.Username,
		Secret:     fields.Secret,
		Notes:      fields.Notes,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	}
	m.records[record.ID] = record
	m.broadcastLocked(ownerID)
	m.mu.Unlock()

	return record.ID, nil
}

func (m *memoryStore) Update(ctx context.Context, recordID string, fields models.CredentialFields) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[recordID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
	}

	// Full overwrite of the writable fields; OwnerID and CreatedAt are
	// never touched.
	now := m.clock()
	record.Website = fields.Website
	record.WebsiteURL = fields.WebsiteURL
	record.Username = fields.Username
	record.Secret = fields.Secret
	record.Notes = fields.Notes
	record.UpdatedAt = &now
	m.records[recordID] = record

	m.broadcastLocked(record.OwnerID)
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, recordID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[recordID]
	if !ok {
		// Idempotent: deleting a missing record succeeds.
		return nil
	}

	delete(m.records, recordID)
	m.broadcastLocked(record.OwnerID)
	return nil
}

func (m *memoryStore) FetchByOwner(ctx context.Context, ownerID string) ([]models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(ownerID), nil
}

func (m *memoryStore) SubscribeByOwner(ctx context.Context, ownerID string, onSnapshot SnapshotFunc, onError ErrorFunc) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	sub := &memorySubscription{
		store:      m,
		ownerID:    ownerID,
		onSnapshot: onSnapshot,
		snapshots:  make(chan []models.Credential, 1),
		done:       make(chan struct{}),
	}

	m.mu.Lock()
	m.subs[sub] = struct{}{}
	// Initial delivery of the current result set.
	sub.push(m.snapshotLocked(ownerID))
	m.mu.Unlock()

	sub.wg.Add(1)
	go sub.pump()

	return sub, nil
}

// snapshotLocked assembles the owner-filtered, newest-first result set.
// Callers must hold m.mu.
func (m *memoryStore) snapshotLocked(ownerID string) []models.Credential {
	out := make([]models.Credential, 0, len(m.records))
	for _, record := range m.records {
		if record.OwnerID == ownerID {
			out = append(out, record)
		}
	}
	models.SortByNewest(out)
	return out
}

// broadcastLocked pushes a fresh snapshot to every subscription watching
// ownerID. Callers must hold m.mu.
func (m *memoryStore) broadcastLocked(ownerID string) {
	for sub := range m.subs {
		if sub.ownerID == ownerID {
			sub.push(m.snapshotLocked(ownerID))
		}
	}
}

// memorySubscription delivers snapshots on its own goroutine so slow
// consumers never block the store. The channel keeps only the latest
// snapshot: intermediate sets may be skipped, the final state never is.
type memorySubscription struct {
	store      *memoryStore
	ownerID    string
	onSnapshot SnapshotFunc

	snapshots chan []models.Credential
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func (s *memorySubscription) push(records []models.Credential) {
	for {
		select {
		case s.snapshots <- records:
			return
		default:
			// Replace the stale pending snapshot with the newer one.
			select {
			case <-s.snapshots:
			default:
			}
		}
	}
}

func (s *memorySubscription) pump() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case records := <-s.snapshots:
			s.onSnapshot(records)
		}
	}
}

// Stop implements [Subscription]. Safe to call more than once.
func (s *memorySubscription) Stop() {
	s.stopOnce.Do(func() {
		s.store.mu.Lock()
		delete(s.store.subs, s)
		s.store.mu.Unlock()

		close(s.done)
		s.wg.Wait()
	})
}
