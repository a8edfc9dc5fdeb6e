package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/learnio/learnio/internal/model"
)

// ProjectFilename returns the JSON export filename for a project:
// the title with spaces replaced by underscores.
func ProjectFilename(p model.Project) string {
	return strings.ReplaceAll(p.Title, " ", "_") + ".json"
}

// ChatFilename returns the CSV export filename for a project's chat
// history.
func ChatFilename(p model.Project) string {
	return strings.ReplaceAll(p.Title, " ", "_") + "_chat_history.csv"
}

// ProjectJSON renders the full project, chat history included, as
// indented JSON.
func ProjectJSON(p model.Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return data, nil
}

// ChatCSV renders a project's chat history as CSV with an
// id,sender,text header. Embedded quotes, commas, and newlines follow
// standard CSV quoting.
func ChatCSV(p model.Project) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"id", "sender", "text"}); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, msg := range p.ChatHistory {
		if err := w.Write([]string{msg.ID, string(msg.Sender), msg.Text}); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return []byte(sb.String()), nil
}

// WriteProjectJSON writes the project's JSON export into dir and
// returns the full path.
func WriteProjectJSON(dir string, p model.Project) (string, error) {
	data, err := ProjectJSON(p)
	if err != nil {
		return "", err
	}
	return write(dir, ProjectFilename(p), data)
}

// WriteChatCSV writes the project's chat history CSV into dir and
// returns the full path.
func WriteChatCSV(dir string, p model.Project) (string, error) {
	data, err := ChatCSV(p)
	if err != nil {
		return "", err
	}
	return write(dir, ChatFilename(p), data)
}

func write(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}
