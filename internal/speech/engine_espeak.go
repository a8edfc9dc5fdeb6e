package speech

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// ESpeakEngine synthesizes speech by running the espeak-ng binary.
// Recognition is not provided; espeak is synthesis only.
type ESpeakEngine struct {
	binary string
}

// NewESpeakEngine creates an engine around the given binary name or
// path. An empty binary defaults to "espeak-ng".
func NewESpeakEngine(binary string) *ESpeakEngine {
	if binary == "" {
		binary = "espeak-ng"
	}
	return &ESpeakEngine{binary: binary}
}

// Voices lists the voices espeak-ng reports via --voices. All espeak
// voices are local. A missing binary maps to ErrUnsupported.
func (e *ESpeakEngine) Voices() ([]Voice, error) {
	if _, err := exec.LookPath(e.binary); err != nil {
		return nil, ErrUnsupported
	}

	out, err := exec.Command(e.binary, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}
	return parseVoiceList(string(out)), nil
}

// parseVoiceList reads espeak-ng --voices output. Each data line is
// "Pty Language Age/Gender VoiceName File Other"; the first line is a
// header.
func parseVoiceList(out string) []Voice {
	var voices []Voice
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{
			Name:  fields[3],
			Lang:  fields[1],
			Local: true,
		})
	}
	return voices
}

// Speak starts an espeak-ng process reading text aloud.
func (e *ESpeakEngine) Speak(text string, v Voice) (Utterance, error) {
	cmd := exec.Command(e.binary, "-v", v.Lang, text)
	if err := cmd.Start(); err != nil {
		return nil, &Error{Code: CodeSynthesisFailed, Err: err}
	}

	u := &espeakUtterance{
		cmd:  cmd,
		done: make(chan error, 1),
	}
	go u.wait()
	return u, nil
}

type espeakUtterance struct {
	cmd  *exec.Cmd
	done chan error

	mu      sync.Mutex
	stopped bool
}

func (u *espeakUtterance) wait() {
	err := u.cmd.Wait()

	u.mu.Lock()
	stopped := u.stopped
	u.mu.Unlock()

	// A deliberate Stop kills the process; that is not a failure.
	if stopped || err == nil {
		u.done <- nil
		return
	}
	u.done <- &Error{Code: CodeSynthesisFailed, Err: err}
}

func (u *espeakUtterance) Pause() error {
	return u.signal(syscall.SIGSTOP)
}

func (u *espeakUtterance) Resume() error {
	return u.signal(syscall.SIGCONT)
}

func (u *espeakUtterance) Stop() error {
	u.mu.Lock()
	if u.stopped {
		u.mu.Unlock()
		return nil
	}
	u.stopped = true
	u.mu.Unlock()

	if u.cmd.Process != nil {
		// The process may have exited on its own already.
		_ = u.cmd.Process.Kill()
	}
	return nil
}

func (u *espeakUtterance) Done() <-chan error {
	return u.done
}

func (u *espeakUtterance) signal(sig syscall.Signal) error {
	if u.cmd.Process == nil {
		return nil
	}
	if err := u.cmd.Process.Signal(sig); err != nil {
		return &Error{Code: CodeUnknown, Err: err}
	}
	return nil
}
