package dto

import "time"

// CreateJobRequest alta de trabajo.
type CreateJobRequest struct {
	CustomerID      string `json:"customer_id" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	Priority        string `json:"priority" validate:"omitempty,oneof=low medium high"`
	ScheduledDate   string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime   string `json:"scheduled_time" validate:"required,datetime=15:04"`
	Notes           string `json:"notes"`
	CalendarEventID string `json:"calendar_event_id"`
}

// UpdateJobRequest actualización parcial de trabajo.
type UpdateJobRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Priority        *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	ScheduledDate   *string `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime   *string `json:"scheduled_time,omitempty" validate:"omitempty,datetime=15:04"`
	Notes           *string `json:"notes,omitempty"`
	CalendarEventID *string `json:"calendar_event_id,omitempty"`
}

// UpdateJobStatusRequest cambio de estado de un trabajo.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
}

// JobResponse representación de trabajo en respuestas.
type JobResponse struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customer_id"`
	QuoteID         string     `json:"quote_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	ScheduledDate   string     `json:"scheduled_date"`
	ScheduledTime   string     `json:"scheduled_time"`
	Notes           string     `json:"notes,omitempty"`
	CalendarEventID string     `json:"calendar_event_id,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
