package models

import "time"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Task is a to-do item attached to a client.
type Task struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status" validate:"required,oneof=todo in_progress done"`
	DueDate     Date       `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t Task) EntityID() string  { return t.ID }
func (t Task) ParentRef() string { return t.ClientID }

// IsOverdue reports whether the task has a due date on an earlier day than
// now and is not done.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskDone || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(now)
}
