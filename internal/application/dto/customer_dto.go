package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name            string          `json:"name" validate:"required"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email" validate:"omitempty,email"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	Zip             string          `json:"zip"`
	Segment         string          `json:"segment" validate:"omitempty,oneof=new recurring vip at_risk"`
	LifetimeValue   decimal.Decimal `json:"lifetime_value"`
	LastServiceDate *time.Time      `json:"last_service_date,omitempty"`
}

// UpdateCustomerRequest actualización parcial de cliente; solo los campos
// presentes se aplican.
type UpdateCustomerRequest struct {
	Name            *string          `json:"name,omitempty"`
	Phone           *string          `json:"phone,omitempty"`
	Email           *string          `json:"email,omitempty" validate:"omitempty,email"`
	Address         *string          `json:"address,omitempty"`
	City            *string          `json:"city,omitempty"`
	Zip             *string          `json:"zip,omitempty"`
	Segment         *string          `json:"segment,omitempty" validate:"omitempty,oneof=new recurring vip at_risk"`
	LifetimeValue   *decimal.Decimal `json:"lifetime_value,omitempty"`
	LastServiceDate *time.Time       `json:"last_service_date,omitempty"`
}

// CampaignResponse campaña de un cliente en respuestas.
type CampaignResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

// CustomerResponse representación de cliente en respuestas.
type CustomerResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Phone           string             `json:"phone"`
	Email           string             `json:"email,omitempty"`
	Address         string             `json:"address,omitempty"`
	City            string             `json:"city,omitempty"`
	Zip             string             `json:"zip,omitempty"`
	Segment         string             `json:"segment"`
	LifetimeValue   decimal.Decimal    `json:"lifetime_value"`
	LastServiceDate *time.Time         `json:"last_service_date,omitempty"`
	LastContactDate *time.Time         `json:"last_contact_date,omitempty"`
	Campaigns       []CampaignResponse `json:"campaigns"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// AddCampaignRequest programa una campaña sobre un cliente.
type AddCampaignRequest struct {
	Type string `json:"type" validate:"required,oneof=reminder seasonal win_back new_customer follow_up"`
}

// BulkCampaignRequest programa una campaña sobre varios clientes a la vez.
type BulkCampaignRequest struct {
	CustomerIDs []string `json:"customer_ids" validate:"required,min=1"`
	Type        string   `json:"type" validate:"required,oneof=reminder seasonal win_back new_customer follow_up"`
}
