package models

import (
	"encoding/json"
	"time"
)

// Record is one row of an application table. All tables share the records
// relation, Table tells them apart and Body holds the row as the client sent it.
type Record struct {
	Table     string
	ID        string
	OwnerID   string
	Body      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter restricts a select to rows whose body field Column equals Value.
type Filter struct {
	Column string
	Value  string
}

// Order sorts a select by a body field.
type Order struct {
	Column string
	Desc   bool
}

// Query describes a select against one table on behalf of one owner.
type Query struct {
	Table   string
	OwnerID string
	Filters []Filter
	Order   *Order
	Limit   int
}
