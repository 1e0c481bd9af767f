package models

import "time"

// Reminder is a scheduled local notification about a client.
// NotificationID is the id returned by the device scheduler and is only
// meaningful on the device that created it.
type Reminder struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id" validate:"required"`
	Title          string    `json:"title" validate:"required,max=200"`
	Body           string    `json:"body,omitempty"`
	RemindAt       time.Time `json:"remind_at" validate:"required"`
	NotificationID string    `json:"notification_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r Reminder) EntityID() string  { return r.ID }
func (r Reminder) ParentRef() string { return r.ClientID }
