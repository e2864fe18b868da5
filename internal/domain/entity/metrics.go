package entity

import "github.com/shopspring/decimal"

// SegmentCounts conteo de clientes por segmento. All siempre es el total.
type SegmentCounts struct {
	All       int `json:"all"`
	New       int `json:"new"`
	Recurring int `json:"recurring"`
	VIP       int `json:"vip"`
	AtRisk    int `json:"at_risk"`
}

// CampaignStats estadísticas agregadas de campañas sobre toda la cartera.
// CampaignsByType siempre contiene los cinco tipos como claves, aunque estén en cero.
type CampaignStats struct {
	TotalCampaigns     int                  `json:"total_campaigns"`
	ActiveCampaigns    int                  `json:"active_campaigns"`
	CompletedCampaigns int                  `json:"completed_campaigns"`
	ScheduledCampaigns int                  `json:"scheduled_campaigns"`
	CampaignsByType    map[CampaignType]int `json:"campaigns_by_type"`
	// CustomerCoverage porcentaje redondeado de clientes con al menos una campaña (0 si no hay clientes).
	CustomerCoverage int `json:"customer_coverage"`
}

// CustomerMetrics snapshot derivado del repositorio de clientes.
// No es mutable de forma independiente: queda inválido tras cualquier mutación
// del repositorio hasta que se recalcule.
type CustomerMetrics struct {
	TotalCustomers        int             `json:"total_customers"`
	ActiveCustomers       int             `json:"active_customers"`   // segmento != at_risk
	InactiveCustomers     int             `json:"inactive_customers"` // segmento == at_risk
	NewCustomersThisMonth int             `json:"new_customers_this_month"`
	GrowthRate            float64         `json:"growth_rate"`          // requiere histórico; siempre 0
	AverageLifetimeValue  decimal.Decimal `json:"average_lifetime_value"`
	RepeatCustomerRate    float64         `json:"repeat_customer_rate"` // requiere historial de jobs; siempre 0
	AcquisitionCost       decimal.Decimal `json:"acquisition_cost"`     // requiere gasto de marketing; siempre 0
	SegmentCounts         SegmentCounts   `json:"segment_counts"`
	CampaignStats         CampaignStats   `json:"campaign_stats"`
}
