package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

// Datos de ejemplo que se cargan para la cuenta de prueba (test_user_001).
// Los IDs llevan prefijo test_ para no chocar con datos reales.

// SampleCustomers clientes de demostración con segmentos y campañas variados.
func SampleCustomers(now time.Time) []*entity.Customer {
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	ptr := func(t time.Time) *time.Time { return &t }

	return []*entity.Customer{
		{
			ID: "test_cust_001", Name: "María García", Phone: "555-0101",
			Email: "maria.garcia@example.com", Address: "Calle 12 #34-56",
			City: "Springfield", Zip: "62701",
			Segment: entity.SegmentVIP, LifetimeValue: decimal.NewFromInt(4800),
			LastServiceDate: ptr(daysAgo(12)),
			Campaigns: []entity.Campaign{{
				ID: "test_camp_001", Type: entity.CampaignSeasonal,
				Status: entity.CampaignScheduled, ScheduledDate: now.AddDate(0, 0, 5),
			}},
			CreatedAt: daysAgo(400), UpdatedAt: daysAgo(12),
		},
		{
			ID: "test_cust_002", Name: "John Miller", Phone: "555-0102",
			Email: "john.miller@example.com", Address: "742 Evergreen Terrace",
			City: "Springfield", Zip: "62702",
			Segment: entity.SegmentRecurring, LifetimeValue: decimal.NewFromInt(1650),
			LastServiceDate: ptr(daysAgo(25)),
			CreatedAt:       daysAgo(210), UpdatedAt: daysAgo(25),
		},
		{
			ID: "test_cust_003", Name: "Lucía Fernández", Phone: "555-0103",
			Email: "lucia.fernandez@example.com", Address: "Av. Central 89",
			City: "Shelbyville", Zip: "62565",
			Segment: entity.SegmentNew, LifetimeValue: decimal.NewFromInt(320),
			CreatedAt: daysAgo(9), UpdatedAt: daysAgo(9),
		},
		{
			ID: "test_cust_004", Name: "Robert Chen", Phone: "555-0104",
			Email: "robert.chen@example.com", Address: "15 Oak Street",
			City: "Springfield", Zip: "62704",
			Segment: entity.SegmentAtRisk, LifetimeValue: decimal.NewFromInt(950),
			LastServiceDate: ptr(daysAgo(240)),
			CreatedAt:       daysAgo(600), UpdatedAt: daysAgo(240),
		},
	}
}

// SampleQuotes cotizaciones de demostración; la aprobada puede convertirse en job.
func SampleQuotes(now time.Time) []*entity.Quote {
	return []*entity.Quote{
		{
			ID: "test_quote_001", CustomerID: "test_cust_002",
			Title: "Mantenimiento de caldera",
			Items: []entity.QuoteItem{{
				Description: "Revisión anual", Quantity: 1,
				UnitPrice: decimal.NewFromInt(180), Total: decimal.NewFromInt(180),
			}},
			Total: decimal.NewFromInt(180), Status: entity.QuoteApproved,
			ScheduledDate: now.AddDate(0, 0, 7).Format("2006-01-02"), ScheduledTime: "10:00",
			Notes:     "Acceso por el patio trasero",
			CreatedAt: now.AddDate(0, 0, -6), UpdatedAt: now.AddDate(0, 0, -2),
		},
		{
			ID: "test_quote_002", CustomerID: "test_cust_003",
			Title: "Instalación de aire acondicionado",
			Items: []entity.QuoteItem{{
				Description: "Equipo + instalación", Quantity: 1,
				UnitPrice: decimal.NewFromInt(1250), Total: decimal.NewFromInt(1250),
			}},
			Total: decimal.NewFromInt(1250), Status: entity.QuoteDraft,
			CreatedAt: now.AddDate(0, 0, -1), UpdatedAt: now.AddDate(0, 0, -1),
		},
	}
}

// SampleJobs trabajos de demostración.
func SampleJobs(now time.Time) []*entity.Job {
	return []*entity.Job{
		{
			ID: "test_job_001", CustomerID: "test_cust_001",
			Title: "Limpieza de canaletas", Description: "Servicio trimestral",
			Status: entity.JobScheduled, Priority: entity.PriorityMedium,
			ScheduledDate: now.AddDate(0, 0, 3).Format("2006-01-02"), ScheduledTime: "09:00",
			CreatedAt:     now.AddDate(0, 0, -4), UpdatedAt: now.AddDate(0, 0, -4),
		},
	}
}
