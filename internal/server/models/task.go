package models

import "time"

// Task types.
const (
	TaskTypeProject  = "project"
	TaskTypeHomework = "homework"
)

// Task is a user-owned item with a deadline. SubjectID is an optional
// back-reference to a Subject owned by the same user; nil means the task
// is not attached to any subject.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Type        string    `json:"type"`
	Done        bool      `json:"done"`
	UserID      string    `json:"user_id"`
	SubjectID   *string   `json:"subject_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidTaskType reports whether t is one of the known task types.
func ValidTaskType(t string) bool {
	return t == TaskTypeProject || t == TaskTypeHomework
}
