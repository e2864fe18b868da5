package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerSegment clasificación comercial de un cliente.
// El segmento es un atributo almacenado, asignado externamente; nunca se recalcula
// a partir del comportamiento del cliente.
type CustomerSegment string

const (
	SegmentAll       CustomerSegment = "all" // solo para filtrado; nunca se almacena
	SegmentNew       CustomerSegment = "new"
	SegmentRecurring CustomerSegment = "recurring"
	SegmentVIP       CustomerSegment = "vip"
	SegmentAtRisk    CustomerSegment = "at_risk"
)

// ValidSegment indica si el valor es un segmento almacenable.
func ValidSegment(s CustomerSegment) bool {
	switch s {
	case SegmentNew, SegmentRecurring, SegmentVIP, SegmentAtRisk:
		return true
	}
	return false
}

// CampaignType tipo de campaña de marketing.
type CampaignType string

const (
	CampaignReminder    CampaignType = "reminder"
	CampaignSeasonal    CampaignType = "seasonal"
	CampaignWinBack     CampaignType = "win_back"
	CampaignNewCustomer CampaignType = "new_customer"
	CampaignFollowUp    CampaignType = "follow_up"
)

// CampaignTypes todos los tipos de campaña, en orden fijo para estadísticas.
var CampaignTypes = []CampaignType{
	CampaignReminder, CampaignSeasonal, CampaignWinBack, CampaignNewCustomer, CampaignFollowUp,
}

// ValidCampaignType indica si el valor es un tipo de campaña conocido.
func ValidCampaignType(t CampaignType) bool {
	for _, ct := range CampaignTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// CampaignStatus estado de una campaña.
type CampaignStatus string

const (
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSent      CampaignStatus = "sent"
	CampaignCompleted CampaignStatus = "completed"
)

// Campaign un contacto de marketing programado, propiedad exclusiva de su cliente.
type Campaign struct {
	ID            string         `json:"id"`
	Type          CampaignType   `json:"type"`
	Status        CampaignStatus `json:"status"`
	ScheduledDate time.Time      `json:"scheduled_date"`
}

// Active indica si la campaña sigue viva (programada o enviada, sin completar).
func (c Campaign) Active() bool {
	return c.Status == CampaignScheduled || c.Status == CampaignSent
}

// Customer representa un cliente del contratista.
// Invariantes: ID único dentro del repositorio; UpdatedAt >= CreatedAt.
type Customer struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	Zip             string          `json:"zip"`
	Segment         CustomerSegment `json:"segment"`
	LifetimeValue   decimal.Decimal `json:"lifetime_value"`
	LastServiceDate *time.Time      `json:"last_service_date,omitempty"`
	LastContactDate *time.Time      `json:"last_contact_date,omitempty"`
	Campaigns       []Campaign      `json:"campaigns"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ActiveCampaignOfType devuelve la campaña activa del tipo dado, o nil.
func (c *Customer) ActiveCampaignOfType(t CampaignType) *Campaign {
	for i := range c.Campaigns {
		if c.Campaigns[i].Type == t && c.Campaigns[i].Active() {
			return &c.Campaigns[i]
		}
	}
	return nil
}
