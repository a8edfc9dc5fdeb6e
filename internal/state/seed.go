package state

import "github.com/learnio/learnio/internal/model"

// seedProjects returns the demo projects every fresh session starts with.
func seedProjects() []model.Project {
	return []model.Project{
		{
			ID:          "1",
			Title:       "AI Research Paper",
			Description: "A comprehensive study on the impact of large language models in modern education.",
			Category:    model.CategoryResearch,
			Timestamp:   "2 weeks ago",
			Deadline:    "2024-08-15",
			Priority:    model.PriorityHigh,
			Status:      model.StatusActive,
			Pinned:      true,
			ChatHistory: []model.ChatMessage{},
		},
		{
			ID:          "2",
			Title:       "Q3 Marketing Campaign",
			Description: "Launch plan for the new product line, targeting social media and content creators.",
			Category:    model.CategoryWork,
			Timestamp:   "1 month ago",
			Deadline:    "2024-07-30",
			Priority:    model.PriorityMedium,
			Status:      model.StatusActive,
			ChatHistory: []model.ChatMessage{},
		},
		{
			ID:          "3",
			Title:       "Learn Advanced React",
			Description: "Completed a course on advanced React patterns including hooks, context, and performance optimization.",
			Category:    model.CategoryEducation,
			Timestamp:   "3 days ago",
			Deadline:    "2024-06-20",
			Priority:    model.PriorityLow,
			Status:      model.StatusCompleted,
			ChatHistory: []model.ChatMessage{},
		},
	}
}

func seedTasks() []model.Task {
	return []model.Task{
		{ID: "1", Text: "Finalize Q3 report slides", DueDate: "Tomorrow"},
		{ID: "2", Text: "Review project proposal with team", DueDate: "Friday"},
		{ID: "3", Text: "Submit weekly progress update", Completed: true, DueDate: "Yesterday"},
	}
}

func seedNotes() []model.Note {
	return []model.Note{
		{ID: "1", Text: "AI conference keynote was inspiring. Need to look into generative adversarial networks more.", Timestamp: "2 days ago"},
		{ID: "2", Text: "Idea for new app feature: voice-to-text transcription for project notes.", Timestamp: "1 week ago"},
	}
}

func seedNotifications() []model.Notification {
	return []model.Notification{
		{
			ID:        "1",
			Text:      `New comment on "AI Research Paper"`,
			Timestamp: "5m ago",
			Type:      model.NotificationProject,
			Link:      model.PageProjects,
			ContextID: "1",
		},
		{
			ID:        "2",
			Text:      `Your task "Finalize Q3 report" is due tomorrow`,
			Timestamp: "1h ago",
			Type:      model.NotificationTask,
			Link:      model.PageHome,
		},
		{
			ID:        "3",
			Text:      "Profile update was successful",
			Timestamp: "1d ago",
			Read:      true,
			Type:      model.NotificationGeneral,
			Link:      model.PageProfile,
		},
	}
}
