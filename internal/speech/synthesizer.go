package speech

import (
	"fmt"
	"strings"
	"sync"

	"github.com/learnio/learnio/internal/model"
)

// Synthesizer drives a SynthesisEngine, keeping at most one utterance
// in flight. Starting a new utterance cancels the old one.
type Synthesizer struct {
	engine SynthesisEngine

	mu        sync.Mutex
	current   Utterance
	currentID string
	paused    bool
}

// NewSynthesizer wraps an engine. A nil engine behaves as unsupported.
func NewSynthesizer(engine SynthesisEngine) *Synthesizer {
	return &Synthesizer{engine: engine}
}

// SelectVoice picks the best voice for a language: an exact
// language+locale match served locally, then an exact match of any
// kind, then a language-prefix match served locally, then any prefix
// match. ok is false when nothing matches.
func SelectVoice(voices []Voice, lang model.Language) (Voice, bool) {
	locale := lang.Locale()
	prefix := string(lang)

	type match func(Voice) bool
	passes := []match{
		func(v Voice) bool { return strings.EqualFold(v.Lang, locale) && v.Local },
		func(v Voice) bool { return strings.EqualFold(v.Lang, locale) },
		func(v Voice) bool { return hasLangPrefix(v.Lang, prefix) && v.Local },
		func(v Voice) bool { return hasLangPrefix(v.Lang, prefix) },
	}
	for _, ok := range passes {
		for _, v := range voices {
			if ok(v) {
				return v, true
			}
		}
	}
	return Voice{}, false
}

func hasLangPrefix(tag, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(tag), strings.ToLower(prefix))
}

// Speak starts reading text aloud in the given language, cancelling
// any utterance already playing. Bold subtitle markers are stripped
// first. When no installed voice matches the language, a
// voice-unavailable error is returned and the engine is not invoked.
// The returned channel receives once, when playback ends.
func (s *Synthesizer) Speak(id, text string, lang model.Language) (<-chan error, error) {
	if s.engine == nil {
		return nil, ErrUnsupported
	}

	voices, err := s.engine.Voices()
	if err != nil {
		return nil, err
	}
	voice, ok := SelectVoice(voices, lang)
	if !ok {
		return nil, &Error{
			Code: CodeVoiceUnavailable,
			Err:  fmt.Errorf("no installed voice for %s", lang.DisplayName()),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Stop()
		s.current = nil
		s.currentID = ""
	}

	utt, err := s.engine.Speak(StripSubtitles(text), voice)
	if err != nil {
		return nil, err
	}

	s.current = utt
	s.currentID = id
	s.paused = false

	done := make(chan error, 1)
	go func() {
		err := <-utt.Done()

		s.mu.Lock()
		if s.current == utt {
			s.current = nil
			s.currentID = ""
			s.paused = false
		}
		s.mu.Unlock()

		done <- err
	}()
	return done, nil
}

// Pause suspends the current utterance.
func (s *Synthesizer) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.paused {
		return nil
	}
	if err := s.current.Pause(); err != nil {
		return err
	}
	s.paused = true
	return nil
}

// Resume continues a paused utterance.
func (s *Synthesizer) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.paused {
		return nil
	}
	if err := s.current.Resume(); err != nil {
		return err
	}
	s.paused = false
	return nil
}

// Stop cancels the current utterance. Idempotent.
func (s *Synthesizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	s.current.Stop()
	s.current = nil
	s.currentID = ""
	s.paused = false
}

// SpeakingID returns the id passed to Speak for the utterance
// currently playing, and whether it is paused. id is empty when
// nothing is playing.
func (s *Synthesizer) SpeakingID() (id string, paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID, s.paused
}
