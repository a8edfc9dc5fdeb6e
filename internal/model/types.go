package model

// Theme selects the light or dark rendering palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Page identifies one of the top-level application views.
type Page string

const (
	PageHome     Page = "home"
	PageChat     Page = "chat"
	PageProjects Page = "projects"
	PageSearch   Page = "search"
	PageProfile  Page = "profile"
)

// Language is the assistant response language preference.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTamil   Language = "ta"
)

// Locale returns the speech locale tag for the language.
func (l Language) Locale() string {
	if l == LanguageTamil {
		return "ta-IN"
	}
	return "en-US"
}

// DisplayName returns the human-readable language name.
func (l Language) DisplayName() string {
	if l == LanguageTamil {
		return "Tamil"
	}
	return "English"
}

// Sender identifies the author of a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Category classifies a project. The empty string means unset.
type Category string

const (
	CategoryEducation Category = "Education"
	CategoryWork      Category = "Work"
	CategoryResearch  Category = "Research"
	CategoryOther     Category = "Other"
)

// Priority is a project's urgency level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status is a project's lifecycle state.
type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusArchived  Status = "Archived"
)

// ToastType selects the visual treatment of a toast notice.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastInfo    ToastType = "info"
	ToastError   ToastType = "error"
)

// NotificationType classifies a notification for icon/color purposes.
type NotificationType string

const (
	NotificationProject NotificationType = "project"
	NotificationTask    NotificationType = "task"
	NotificationGeneral NotificationType = "general"
)
