package models

import "time"

type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// Job is a piece of billable work done for a client.
type Job struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id" validate:"required"`
	Title         string    `json:"title" validate:"required,max=200"`
	Description   string    `json:"description,omitempty"`
	Status        JobStatus `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
	ScheduledDate Date      `json:"scheduled_date"`
	Price         float64   `json:"price" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (j Job) EntityID() string  { return j.ID }
func (j Job) ParentRef() string { return j.ClientID }
