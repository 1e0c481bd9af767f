package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_IsUUID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NotEqual(t, id, NewID())
}

func TestDate_JSON(t *testing.T) {
	var v struct {
		Due Date `json:"due_date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2024-01-15"}`), &v))
	assert.Equal(t, 2024, v.Due.Year())
	assert.Equal(t, time.January, v.Due.Month())
	assert.Equal(t, 15, v.Due.Day())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due_date":"2024-01-15"}`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2024-03-02T10:00:00Z"}`), &v))
	assert.Equal(t, "2024-03-02", v.Due.String())

	require.NoError(t, json.Unmarshal([]byte(`{"due_date":null}`), &v))
	assert.True(t, v.Due.IsZero())

	b, err = json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due_date":null}`, string(b))

	require.Error(t, json.Unmarshal([]byte(`{"due_date":"15/01/2024"}`), &v))
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	past := NewDate(now.AddDate(0, 0, -1))
	today := NewDate(now)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{name: "past due and todo", task: Task{Status: TaskTodo, DueDate: past}, want: true},
		{name: "past due and in progress", task: Task{Status: TaskInProgress, DueDate: past}, want: true},
		{name: "past due but done", task: Task{Status: TaskDone, DueDate: past}, want: false},
		{name: "due today", task: Task{Status: TaskTodo, DueDate: today}, want: false},
		{name: "no due date", task: Task{Status: TaskTodo}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
		})
	}
}

func TestInvoice_ItemsTotal(t *testing.T) {
	inv := Invoice{Items: []InvoiceItem{
		{Description: "labour", Quantity: 3, UnitPrice: 45.5},
		{Description: "parts", Quantity: 1, UnitPrice: 19.99},
	}}
	assert.Equal(t, 156.49, inv.ItemsTotal())
}

func TestParentRef(t *testing.T) {
	assert.Equal(t, "", Client{ID: "c1"}.ParentRef())
	assert.Equal(t, "c1", Task{ClientID: "c1"}.ParentRef())
	assert.Equal(t, "c1", Reminder{ClientID: "c1"}.ParentRef())
	assert.Equal(t, "c1", Job{ClientID: "c1"}.ParentRef())
	assert.Equal(t, "c1", Invoice{ClientID: "c1"}.ParentRef())
	assert.Equal(t, "", Lead{ID: "l1"}.ParentRef())
}

func TestTask_IsOverdue_LocalDay(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"status":"todo","due_date":"2024-05-10"}`), &task))

	newYork := time.FixedZone("EDT", -4*60*60)
	sydney := time.FixedZone("AEST", 10*60*60)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"due day morning west of UTC", time.Date(2024, 5, 10, 9, 0, 0, 0, newYork), false},
		{"due day late evening west of UTC", time.Date(2024, 5, 10, 23, 30, 0, 0, newYork), false},
		{"due day early morning east of UTC", time.Date(2024, 5, 10, 1, 0, 0, 0, sydney), false},
		{"next day west of UTC", time.Date(2024, 5, 11, 0, 5, 0, 0, newYork), true},
		{"next day east of UTC", time.Date(2024, 5, 11, 8, 0, 0, 0, sydney), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, task.IsOverdue(tt.now))
		})
	}

	due, err := ParseDate("2024-05-10")
	require.NoError(t, err)
	assert.False(t, due.Before(time.Date(2024, 5, 10, 9, 0, 0, 0, newYork)))
}
