package crm

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

// ComputeMetrics deriva el snapshot de métricas a partir del estado actual de
// la cartera. Función pura: no toca el repositorio ni cachea nada.
//
// Garantías numéricas: con cartera vacía AverageLifetimeValue es 0 (nunca NaN)
// y SegmentCounts.All siempre coincide con el total de clientes.
func ComputeMetrics(customers []*entity.Customer, now time.Time) entity.CustomerMetrics {
	total := len(customers)
	m := entity.CustomerMetrics{
		TotalCustomers:       total,
		AverageLifetimeValue: decimal.Zero,
		AcquisitionCost:      decimal.Zero,
		SegmentCounts:        entity.SegmentCounts{All: total},
	}

	sum := decimal.Zero
	for _, c := range customers {
		if c.Segment == entity.SegmentAtRisk {
			m.InactiveCustomers++
		} else {
			m.ActiveCustomers++
		}
		if c.CreatedAt.Month() == now.Month() && c.CreatedAt.Year() == now.Year() {
			m.NewCustomersThisMonth++
		}
		sum = sum.Add(c.LifetimeValue)

		switch c.Segment {
		case entity.SegmentNew:
			m.SegmentCounts.New++
		case entity.SegmentRecurring:
			m.SegmentCounts.Recurring++
		case entity.SegmentVIP:
			m.SegmentCounts.VIP++
		case entity.SegmentAtRisk:
			m.SegmentCounts.AtRisk++
		}
	}

	if total > 0 {
		m.AverageLifetimeValue = sum.Div(decimal.NewFromInt(int64(total))).Round(2)
	}
	m.CampaignStats = ComputeCampaignStatistics(customers)
	return m
}

// ComputeCampaignStatistics agrega las campañas de toda la cartera.
// CampaignsByType siempre lleva los cinco tipos como claves, aunque estén en cero.
func ComputeCampaignStatistics(customers []*entity.Customer) entity.CampaignStats {
	stats := entity.CampaignStats{
		CampaignsByType: make(map[entity.CampaignType]int, len(entity.CampaignTypes)),
	}
	for _, t := range entity.CampaignTypes {
		stats.CampaignsByType[t] = 0
	}

	covered := 0
	for _, c := range customers {
		if len(c.Campaigns) > 0 {
			covered++
		}
		for _, camp := range c.Campaigns {
			stats.TotalCampaigns++
			if camp.Active() {
				stats.ActiveCampaigns++
			}
			if camp.Status == entity.CampaignCompleted {
				stats.CompletedCampaigns++
			}
			if camp.Status == entity.CampaignScheduled {
				stats.ScheduledCampaigns++
			}
			if _, ok := stats.CampaignsByType[camp.Type]; ok {
				stats.CampaignsByType[camp.Type]++
			}
		}
	}

	if len(customers) > 0 {
		// Redondeo al entero más cercano, igual que Math.round.
		stats.CustomerCoverage = (covered*100 + len(customers)/2) / len(customers)
	}
	return stats
}
