package models

import "time"

// RefreshToken is a server-stored, single-use token that buys a new access token.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
