package model

// Notification is an alert surfaced in the header dropdown.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Text is the human-readable notification message.
	Text string `json:"text"`

	// Timestamp is the display string for when it was generated.
	Timestamp string `json:"timestamp"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"isRead"`

	// Type classifies the notification for rendering.
	Type NotificationType `json:"type"`

	// Link is the page to navigate to when clicked, if any.
	Link Page `json:"link,omitempty"`

	// ContextID optionally references a related entity, such as the
	// project a comment landed on. The target may no longer exist.
	ContextID string `json:"contextId,omitempty"`
}

// Toast is a short-lived auto-dismissing notice. Identity is the
// numeric ID: an expiry for an older toast must not clear a newer one.
type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}
