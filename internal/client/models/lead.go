package models

import "time"

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadWon       LeadStatus = "won"
	LeadLost      LeadStatus = "lost"
)

// Lead is a prospective client that has not been converted yet.
type Lead struct {
	ID             string     `json:"id"`
	Name           string     `json:"name" validate:"required,max=200"`
	Email          string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string     `json:"phone,omitempty"`
	Source         string     `json:"source,omitempty"`
	Status         LeadStatus `json:"status" validate:"required,oneof=new contacted qualified won lost"`
	EstimatedValue float64    `json:"estimated_value" validate:"gte=0"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (l Lead) EntityID() string  { return l.ID }
func (l Lead) ParentRef() string { return "" }
