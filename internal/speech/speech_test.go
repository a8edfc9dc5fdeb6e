package speech

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/learnio/learnio/internal/model"
)

type fakeUtterance struct {
	done    chan error
	paused  bool
	stopped bool
}

func newFakeUtterance() *fakeUtterance {
	return &fakeUtterance{done: make(chan error, 1)}
}

func (u *fakeUtterance) Pause() error  { u.paused = true; return nil }
func (u *fakeUtterance) Resume() error { u.paused = false; return nil }
func (u *fakeUtterance) Stop() error {
	if !u.stopped {
		u.stopped = true
		u.done <- nil
	}
	return nil
}
func (u *fakeUtterance) Done() <-chan error { return u.done }

type fakeSynthEngine struct {
	voices     []Voice
	spoken     []string
	spokenWith []Voice
	last       *fakeUtterance
}

func (e *fakeSynthEngine) Voices() ([]Voice, error) { return e.voices, nil }

func (e *fakeSynthEngine) Speak(text string, v Voice) (Utterance, error) {
	e.spoken = append(e.spoken, text)
	e.spokenWith = append(e.spokenWith, v)
	e.last = newFakeUtterance()
	return e.last, nil
}

func TestSelectVoicePolicy(t *testing.T) {
	voices := []Voice{
		{Name: "remote-exact", Lang: "en-US"},
		{Name: "local-prefix", Lang: "en-GB", Local: true},
		{Name: "local-exact", Lang: "en-US", Local: true},
		{Name: "remote-prefix", Lang: "en"},
	}

	v, ok := SelectVoice(voices, model.LanguageEnglish)
	if !ok || v.Name != "local-exact" {
		t.Errorf("expected local exact match, got %+v", v)
	}

	// Without a local exact voice, the remote exact one wins.
	v, ok = SelectVoice(voices[:2], model.LanguageEnglish)
	if !ok || v.Name != "remote-exact" {
		t.Errorf("expected remote exact match, got %+v", v)
	}

	// Only prefix matches left.
	v, ok = SelectVoice(voices[1:2], model.LanguageEnglish)
	if !ok || v.Name != "local-prefix" {
		t.Errorf("expected local prefix match, got %+v", v)
	}

	// Case-insensitive tags, as engines report lowercase.
	v, ok = SelectVoice([]Voice{{Name: "ta", Lang: "ta-in", Local: true}}, model.LanguageTamil)
	if !ok || v.Name != "ta" {
		t.Errorf("expected case-insensitive exact match, got %+v", v)
	}

	if _, ok := SelectVoice(voices, model.LanguageTamil); ok {
		t.Error("expected no match for Tamil among English voices")
	}
}

func TestSpeakUnavailableVoiceNeverInvokesEngine(t *testing.T) {
	engine := &fakeSynthEngine{voices: []Voice{{Name: "en", Lang: "en-US", Local: true}}}
	s := NewSynthesizer(engine)

	_, err := s.Speak("m1", "hello", model.LanguageTamil)
	if err == nil {
		t.Fatal("expected voice-unavailable error")
	}
	var se *Error
	if !errors.As(err, &se) || se.Code != CodeVoiceUnavailable {
		t.Fatalf("expected voice-unavailable code, got %v", err)
	}
	if len(engine.spoken) != 0 {
		t.Error("engine must not be invoked when no voice matches")
	}
	if UserMessage(err) != "The requested language or voice is not available." {
		t.Errorf("unexpected user message: %q", UserMessage(err))
	}
}

func TestSpeakStripsSubtitlesAndReplaces(t *testing.T) {
	engine := &fakeSynthEngine{voices: []Voice{{Name: "en", Lang: "en-US", Local: true}}}
	s := NewSynthesizer(engine)

	done1, err := s.Speak("m1", "1. **Plan:** Start early.", model.LanguageEnglish)
	if err != nil {
		t.Fatalf("speaking: %v", err)
	}
	if engine.spoken[0] != "1. Plan: Start early." {
		t.Errorf("expected subtitle markers stripped, got %q", engine.spoken[0])
	}
	if id, _ := s.SpeakingID(); id != "m1" {
		t.Errorf("expected m1 speaking, got %q", id)
	}

	first := engine.last
	if _, err := s.Speak("m2", "second", model.LanguageEnglish); err != nil {
		t.Fatalf("speaking second: %v", err)
	}
	if !first.stopped {
		t.Error("expected first utterance stopped when second starts")
	}
	if id, _ := s.SpeakingID(); id != "m2" {
		t.Errorf("expected m2 speaking, got %q", id)
	}

	select {
	case err := <-done1:
		if err != nil {
			t.Errorf("cancelled utterance should complete without error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first utterance to finish")
	}
}

func TestPauseResumeStop(t *testing.T) {
	engine := &fakeSynthEngine{voices: []Voice{{Name: "en", Lang: "en-US", Local: true}}}
	s := NewSynthesizer(engine)

	done, err := s.Speak("m1", "hello", model.LanguageEnglish)
	if err != nil {
		t.Fatalf("speaking: %v", err)
	}

	if err := s.Pause(); err != nil {
		t.Fatalf("pausing: %v", err)
	}
	if _, paused := s.SpeakingID(); !paused {
		t.Error("expected paused state")
	}
	if !engine.last.paused {
		t.Error("expected engine utterance paused")
	}

	if err := s.Resume(); err != nil {
		t.Fatalf("resuming: %v", err)
	}
	if _, paused := s.SpeakingID(); paused {
		t.Error("expected resumed state")
	}

	s.Stop()
	if id, _ := s.SpeakingID(); id != "" {
		t.Errorf("expected nothing speaking after stop, got %q", id)
	}
	// Stop again is a no-op.
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for done after stop")
	}
}

type fakeRecognitionEngine struct {
	transcript string
	err        error
	block      bool
}

func (e *fakeRecognitionEngine) Listen(ctx context.Context, locale string) (string, error) {
	if e.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return e.transcript, e.err
}

func TestRecognizerSingleResult(t *testing.T) {
	r := NewRecognizer(&fakeRecognitionEngine{transcript: "hello world"})

	ch, err := r.Start("en-US")
	if err != nil {
		t.Fatalf("starting recognition: %v", err)
	}

	select {
	case res := <-ch:
		if res.Err != nil || res.Transcript != "hello world" {
			t.Errorf("unexpected result: %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for transcript")
	}

	if r.Listening() {
		t.Error("expected session to auto-stop after a final transcript")
	}
}

func TestRecognizerStopIdempotent(t *testing.T) {
	r := NewRecognizer(&fakeRecognitionEngine{block: true})

	ch, err := r.Start("en-US")
	if err != nil {
		t.Fatalf("starting recognition: %v", err)
	}
	if !r.Listening() {
		t.Fatal("expected active session")
	}

	r.Stop()
	r.Stop()
	if r.Listening() {
		t.Error("expected session stopped")
	}

	select {
	case res := <-ch:
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("expected cancellation, got %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cancelled result")
	}
}

func TestRecognizerNilEngine(t *testing.T) {
	r := NewRecognizer(nil)
	if _, err := r.Start("en-US"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestStripSubtitles(t *testing.T) {
	got := StripSubtitles("1. **Plan:** Start early.\n\n2. **Review:** Check twice.")
	want := "1. Plan: Start early.\n\n2. Review: Check twice."
	if got != want {
		t.Errorf("StripSubtitles = %q, want %q", got, want)
	}
}

func TestParseVoiceList(t *testing.T) {
	out := `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  en-US           M  english-us           gmw/en-US
 5  ta              M  tamil                dra/ta
`
	voices := parseVoiceList(out)
	if len(voices) != 2 {
		t.Fatalf("expected 2 voices, got %d", len(voices))
	}
	if voices[0].Lang != "en-US" || voices[0].Name != "english-us" || !voices[0].Local {
		t.Errorf("unexpected first voice: %+v", voices[0])
	}
	if voices[1].Lang != "ta" || voices[1].Name != "tamil" {
		t.Errorf("unexpected second voice: %+v", voices[1])
	}
}
