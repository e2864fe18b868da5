package entity

import "time"

// JobStatus estado de un trabajo agendado.
type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// JobPriority prioridad de un trabajo.
type JobPriority string

const (
	PriorityLow    JobPriority = "low"
	PriorityMedium JobPriority = "medium"
	PriorityHigh   JobPriority = "high"
)

// Job trabajo agendado para un cliente; puede provenir de una cotización (QuoteID).
type Job struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	QuoteID         string      `json:"quote_id,omitempty"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Status          JobStatus   `json:"status"`
	Priority        JobPriority `json:"priority"`
	ScheduledDate   string      `json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime   string      `json:"scheduled_time"` // HH:MM
	Notes           string      `json:"notes,omitempty"`
	CalendarEventID string      `json:"calendar_event_id,omitempty"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
