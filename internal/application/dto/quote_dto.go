package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItemRequest línea de cotización en la petición.
type QuoteItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest alta de cotización (nace en estado draft).
type CreateQuoteRequest struct {
	CustomerID      string             `json:"customer_id" validate:"required"`
	Title           string             `json:"title" validate:"required"`
	Items           []QuoteItemRequest `json:"items" validate:"dive"`
	ScheduledDate   string             `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime   string             `json:"scheduled_time" validate:"omitempty,datetime=15:04"`
	Notes           string             `json:"notes"`
	CalendarEventID string             `json:"calendar_event_id"`
}

// UpdateQuoteRequest actualización parcial. El estado converted no se asigna
// por aquí: solo lo produce la conversión a job.
type UpdateQuoteRequest struct {
	Title           *string `json:"title,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=draft sent approved scheduled rejected"`
	ScheduledDate   *string `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime   *string `json:"scheduled_time,omitempty" validate:"omitempty,datetime=15:04"`
	Notes           *string `json:"notes,omitempty"`
	CalendarEventID *string `json:"calendar_event_id,omitempty"`
}

// QuoteItemResponse línea de cotización en respuestas.
type QuoteItemResponse struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// QuoteResponse representación de cotización en respuestas.
type QuoteResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	Title           string              `json:"title"`
	Items           []QuoteItemResponse `json:"items"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	ScheduledDate   string              `json:"scheduled_date,omitempty"`
	ScheduledTime   string              `json:"scheduled_time,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CalendarEventID string              `json:"calendar_event_id,omitempty"`
	JobID           string              `json:"job_id,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
