package models

import (
	"math"
	"time"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// InvoiceItem is one billed line.
type InvoiceItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

func (i InvoiceItem) Amount() float64 {
	return i.Quantity * i.UnitPrice
}

// Invoice bills a client, optionally for a specific job.
type Invoice struct {
	ID            string        `json:"id"`
	ClientID      string        `json:"client_id" validate:"required"`
	JobID         string        `json:"job_id,omitempty"`
	InvoiceNumber string        `json:"invoice_number" validate:"required,max=64"`
	Items         []InvoiceItem `json:"items" validate:"dive"`
	TotalAmount   float64       `json:"total_amount" validate:"gte=0"`
	Status        InvoiceStatus `json:"status" validate:"required,oneof=draft sent paid overdue"`
	IssuedDate    Date          `json:"issued_date"`
	DueDate       Date          `json:"due_date"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (i Invoice) EntityID() string  { return i.ID }
func (i Invoice) ParentRef() string { return i.ClientID }

// ItemsTotal sums the line items, rounded to cents.
func (i Invoice) ItemsTotal() float64 {
	var sum float64
	for _, it := range i.Items {
		sum += it.Amount()
	}
	return math.Round(sum*100) / 100
}
