package domain

import "time"

type Lesson struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LessonProgress is one user's state for one lesson.
type LessonProgress struct {
	LessonSlug string    `json:"lessonSlug"`
	Completed  bool      `json:"completed"`
	LastScore  *float64  `json:"lastScore,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
