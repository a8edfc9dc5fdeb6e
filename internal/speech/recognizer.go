package speech

import (
	"context"
	"sync"
)

// Result is the outcome of one recognition session.
type Result struct {
	Transcript string
	Err        error
}

// Recognizer drives a RecognitionEngine one session at a time. A
// session produces at most one final transcript and then stops itself.
type Recognizer struct {
	engine RecognitionEngine

	mu      sync.Mutex
	session *session
}

type session struct {
	cancel context.CancelFunc
}

// NewRecognizer wraps an engine. A nil engine behaves as unsupported.
func NewRecognizer(engine RecognitionEngine) *Recognizer {
	return &Recognizer{engine: engine}
}

// Start begins a recognition session for the given locale. The
// returned channel receives exactly one Result. Starting while a
// session is active stops the old session first.
func (r *Recognizer) Start(locale string) (<-chan Result, error) {
	if r.engine == nil {
		return nil, ErrUnsupported
	}

	r.mu.Lock()
	if r.session != nil {
		r.session.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{cancel: cancel}
	r.session = sess
	r.mu.Unlock()

	ch := make(chan Result, 1)
	go func() {
		transcript, err := r.engine.Listen(ctx, locale)
		cancel()

		r.mu.Lock()
		if r.session == sess {
			r.session = nil
		}
		r.mu.Unlock()

		ch <- Result{Transcript: transcript, Err: err}
	}()
	return ch, nil
}

// Stop cancels the active session, if any. Idempotent.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		r.session.cancel()
		r.session = nil
	}
}

// Listening reports whether a session is active.
func (r *Recognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}
