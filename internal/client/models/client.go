package models

import "time"

// Client is a customer of the business.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=200"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty" validate:"omitempty,max=40"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	ImageKey  string    `json:"image_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Client) EntityID() string  { return c.ID }
func (c Client) ParentRef() string { return "" }
