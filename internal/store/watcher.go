package store

import (
	"context"
	"sync"
	"time"
)

// watcherRegistry tracks the live watchers per owner so local writes can
// trigger an immediate refresh instead of waiting out the poll interval.
type watcherRegistry struct {
	mu       sync.Mutex
	watchers map[*watcher]string
}

func newWatcherRegistry() *watcherRegistry {
	return &watcherRegistry{watchers: make(map[*watcher]string)}
}

func (r *watcherRegistry) add(ownerID string, w *watcher) {
	r.mu.Lock()
	r.watchers[w] = ownerID
	r.mu.Unlock()
}

func (r *watcherRegistry) remove(w *watcher) {
	r.mu.Lock()
	delete(r.watchers, w)
	r.mu.Unlock()
}

func (r *watcherRegistry) nudge(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for w, owner := range r.watchers {
		if owner == ownerID {
			w.nudge()
		}
	}
}

func (r *watcherRegistry) nudgeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for w := range r.watchers {
		w.nudge()
	}
}

// watcher is the polling implementation of [Subscription] for the Firestore
// store. Every cycle fetches the owner's full result set and delivers it
// when its fingerprint differs from the last delivered one, so consumers
// see full snapshots with at-least-once semantics. Errors are surfaced via
// onError; the watcher keeps polling, leaving retry policy to the consumer.
type watcher struct {
	store      *firestoreStore
	ownerID    string
	onSnapshot SnapshotFunc
	onError    ErrorFunc

	wake     chan struct{}
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newWatcher(store *firestoreStore, ownerID string, onSnapshot SnapshotFunc, onError ErrorFunc) *watcher {
	return &watcher{
		store:      store,
		ownerID:    ownerID,
		onSnapshot: onSnapshot,
		onError:    onError,
		wake:       make(chan struct{}, 1),
	}
}

func (w *watcher) start(ctx context.Context, interval time.Duration) {
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.run(runCtx, interval)
}

func (w *watcher) run(ctx context.Context, interval time.Duration) {
	defer w.wg.Done()

	var last string
	delivered := false

	// Replay the cached snapshot before the first live fetch, so a client
	// that starts offline still renders its last known state.
	if w.store.cache != nil {
		if cached, err := w.store.cache.Load(ctx, w.ownerID); err == nil && len(cached) > 0 {
			w.onSnapshot(cached)
		}
	}

	refresh := func() {
		records, err := w.store.FetchByOwner(ctx, w.ownerID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
			return
		}

		fp := fingerprint(records)
		if delivered && fp == last {
			return
		}
		last = fp
		delivered = true

		if w.store.cache != nil {
			if err := w.store.cache.Save(ctx, w.ownerID, records); err != nil {
				w.store.log.Warn().Err(err).Msg("persist snapshot cache")
			}
		}
		w.onSnapshot(records)
	}

	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
			refresh()
		case <-ticker.C:
			refresh()
		}
	}
}

// nudge requests an immediate refresh. Coalesces when one is already
// pending.
func (w *watcher) nudge() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Stop implements [Subscription]. Idempotent; waits for the poll goroutine
// to exit so no snapshot is delivered after Stop returns.
func (w *watcher) Stop() {
	w.stopOnce.Do(func() {
		w.store.watchers.remove(w)
		if w.cancel != nil {
			w.cancel()
		}
		w.wg.Wait()
	})
}
