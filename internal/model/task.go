package model

// Task is a lightweight checklist entry on the home dashboard.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"dueDate"`
}

// Note is an append-only quick note. No edit or delete is surfaced.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// UserProfile holds the signed-in user's details. It is replaced
// wholesale on profile save or logout-reset and persisted on every
// update.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Avatar is a base64 data string of the profile image, if set.
	Avatar string `json:"avatar,omitempty"`
}

// DefaultPhone is the placeholder phone number for a fresh profile.
const DefaultPhone = "123-456-7890"

// BlankProfile returns the profile used before login and after logout.
func BlankProfile() UserProfile {
	return UserProfile{Phone: DefaultPhone}
}
