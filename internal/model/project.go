package model

// Project is a tracked piece of work with its own chat history.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    Category      `json:"category"`
	Timestamp   string        `json:"timestamp"`
	Deadline    string        `json:"deadline"`
	Priority    Priority      `json:"priority"`
	Status      Status        `json:"status"`
	Pinned      bool          `json:"isPinned"`
	ChatHistory []ChatMessage `json:"chatHistory"`
}

// ChatMessage is a single entry in a project or session conversation.
// Messages are immutable once created; they are only ever appended.
type ChatMessage struct {
	ID     string   `json:"id"`
	Sender Sender   `json:"sender"`
	Text   string   `json:"text"`
	Lang   Language `json:"lang,omitempty"`
}
