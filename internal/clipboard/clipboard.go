// Package clipboard abstracts the system clipboard behind a small interface
// so services can copy secrets without binding to a platform implementation.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Writer copies text to a clipboard. Implementations must be safe for
// concurrent use.
type Writer interface {
	// WriteText places text on the clipboard, replacing its previous
	// contents. The write is one-shot and may fail on headless systems.
	WriteText(text string) error
}

type systemWriter struct{}

// NewSystemWriter returns a Writer backed by the OS clipboard.
func NewSystemWriter() Writer {
	return systemWriter{}
}

func (systemWriter) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Recorder is an in-memory Writer for tests. It records every write and can
// be primed to fail.
type Recorder struct {
	mu     sync.Mutex
	writes []string

	// Err, when set, is returned by WriteText instead of recording.
	Err error
}

func (r *Recorder) WriteText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.writes = append(r.writes, text)
	return nil
}

// Writes returns a copy of everything written so far.
func (r *Recorder) Writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}
