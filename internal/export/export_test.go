package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/learnio/learnio/internal/model"
)

func sampleProject() model.Project {
	return model.Project{
		ID:       "p1",
		Title:    "AI Research Paper",
		Category: model.CategoryResearch,
		Priority: model.PriorityHigh,
		Status:   model.StatusActive,
		ChatHistory: []model.ChatMessage{
			{ID: "m1", Sender: model.SenderUser, Text: "What should I cover?"},
			{ID: "m2", Sender: model.SenderAI, Text: `He said "hello, world", then left.` + "\nSecond line."},
		},
	}
}

func TestFilenames(t *testing.T) {
	p := sampleProject()
	if got := ProjectFilename(p); got != "AI_Research_Paper.json" {
		t.Errorf("ProjectFilename = %q", got)
	}
	if got := ChatFilename(p); got != "AI_Research_Paper_chat_history.csv" {
		t.Errorf("ChatFilename = %q", got)
	}
}

func TestProjectJSONIncludesChatHistory(t *testing.T) {
	data, err := ProjectJSON(sampleProject())
	if err != nil {
		t.Fatalf("encoding project: %v", err)
	}

	var decoded model.Project
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if decoded.Title != "AI Research Paper" || len(decoded.ChatHistory) != 2 {
		t.Errorf("unexpected decoded project: %+v", decoded)
	}
	if !bytes.Contains(data, []byte("\n  ")) {
		t.Error("expected indented JSON")
	}
}

func TestChatCSVRoundTrip(t *testing.T) {
	p := sampleProject()
	data, err := ChatCSV(p)
	if err != nil {
		t.Fatalf("encoding CSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0], []string{"id", "sender", "text"}) {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "user" || records[1][2] != "What should I cover?" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	want := `He said "hello, world", then left.` + "\nSecond line."
	if records[2][2] != want {
		t.Errorf("quoted text did not survive the round trip: %q", records[2][2])
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	p := sampleProject()

	jsonPath, err := WriteProjectJSON(dir, p)
	if err != nil {
		t.Fatalf("writing JSON export: %v", err)
	}
	if filepath.Base(jsonPath) != "AI_Research_Paper.json" {
		t.Errorf("unexpected JSON path: %s", jsonPath)
	}
	if _, err := os.Stat(jsonPath); err != nil {
		t.Errorf("JSON export missing: %v", err)
	}

	csvPath, err := WriteChatCSV(dir, p)
	if err != nil {
		t.Fatalf("writing CSV export: %v", err)
	}
	if filepath.Base(csvPath) != "AI_Research_Paper_chat_history.csv" {
		t.Errorf("unexpected CSV path: %s", csvPath)
	}
}
