package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus estado del ciclo de vida de una cotización.
type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "draft"
	QuoteSent      QuoteStatus = "sent"
	QuoteApproved  QuoteStatus = "approved"
	QuoteScheduled QuoteStatus = "scheduled"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteConverted QuoteStatus = "converted"
)

// ConvertibleToJob indica si la cotización puede convertirse en job.
func (s QuoteStatus) ConvertibleToJob() bool {
	return s == QuoteApproved || s == QuoteScheduled
}

// QuoteItem línea de una cotización.
type QuoteItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Quote cotización de un trabajo para un cliente.
// Invariante: a lo sumo un Job referencia cada Quote; al convertirse, Status pasa
// a converted y JobID queda asignado.
type Quote struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	Title           string          `json:"title"`
	Items           []QuoteItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          QuoteStatus     `json:"status"`
	ScheduledDate   string          `json:"scheduled_date,omitempty"` // YYYY-MM-DD
	ScheduledTime   string          `json:"scheduled_time,omitempty"` // HH:MM
	Notes           string          `json:"notes,omitempty"`
	CalendarEventID string          `json:"calendar_event_id,omitempty"`
	JobID           string          `json:"job_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
