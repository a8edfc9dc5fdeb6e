package speech

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrUnsupported is returned when no speech engine is available on
// this system. It is recoverable: callers surface a notice and carry
// on without voice features.
var ErrUnsupported = errors.New("speech engine not available")

// ErrorCode classifies a speech failure for user-facing reporting.
type ErrorCode string

const (
	CodeNotAllowed       ErrorCode = "not-allowed"
	CodeVoiceUnavailable ErrorCode = "voice-unavailable"
	CodeSynthesisFailed  ErrorCode = "synthesis-failed"
	CodeNetwork          ErrorCode = "network"
	CodeUnknown          ErrorCode = "unknown"
)

// Error is a classified speech failure.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("speech: %s", e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage maps an error to the notice shown to the user.
func UserMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		switch se.Code {
		case CodeNotAllowed:
			return "Speech synthesis is not allowed. Please check permissions."
		case CodeVoiceUnavailable:
			return "The requested language or voice is not available."
		case CodeSynthesisFailed:
			return "Speech synthesis failed to start."
		case CodeNetwork:
			return "A network error occurred during speech synthesis."
		}
	}
	return "Sorry, an unknown text-to-speech error occurred."
}

// Voice describes one installed synthesis voice.
type Voice struct {
	Name string
	// Lang is the voice's language tag, e.g. "en-US" or "ta".
	Lang string
	// Local reports whether the voice is served on-device rather than
	// over the network.
	Local bool
}

// Utterance is a handle over one in-flight piece of synthesized speech.
type Utterance interface {
	Pause() error
	Resume() error
	// Stop ends playback. The Done channel still receives, with a nil
	// error.
	Stop() error
	// Done receives exactly once, when playback finishes or fails.
	Done() <-chan error
}

// SynthesisEngine produces audible speech for text.
type SynthesisEngine interface {
	// Voices lists installed voices. ErrUnsupported means no engine
	// exists on this system.
	Voices() ([]Voice, error)
	// Speak starts speaking text with the given voice.
	Speak(text string, v Voice) (Utterance, error)
}

// RecognitionEngine converts microphone audio to text. Sessions use
// no interim results and a single best alternative.
type RecognitionEngine interface {
	// Listen blocks until one final transcript is produced, the
	// context is cancelled, or recognition fails.
	Listen(ctx context.Context, locale string) (string, error)
}

var subtitleRe = regexp.MustCompile(`\*\*(.*?):\*\*`)

// StripSubtitles rewrites the assistant's "**Subtitle:**" markers as
// plain "Subtitle:" so they read naturally aloud or on the clipboard.
func StripSubtitles(text string) string {
	return subtitleRe.ReplaceAllString(text, "$1:")
}
