package crm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
)

const (
	// campaignLeadDays días de antelación con que se programa cada campaña nueva.
	campaignLeadDays = 7
	// newCustomerWindowDays ventana que define a un cliente como "nuevo".
	newCustomerWindowDays = 30
	// inactiveAfterMonths meses sin servicio tras los cuales un cliente es inactivo.
	inactiveAfterMonths = 6
)

// AddCampaign programa una campaña del tipo dado para un cliente.
// Idempotente por tipo: si el cliente ya tiene una campaña activa de ese tipo,
// no se crea otra y se devuelve la existente.
func (s *Service) AddCampaign(ctx context.Context, customerID string, campaignType entity.CampaignType) (*entity.Campaign, error) {
	if !entity.ValidCampaignType(campaignType) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := s.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if existing := customer.ActiveCampaignOfType(campaignType); existing != nil {
		out := *existing
		return &out, nil
	}

	now := time.Now()
	campaign := entity.Campaign{
		ID:            uuid.New().String(),
		Type:          campaignType,
		Status:        entity.CampaignScheduled,
		ScheduledDate: now.AddDate(0, 0, campaignLeadDays),
	}
	customer.Campaigns = append(customer.Campaigns, campaign)
	contact := now
	customer.LastContactDate = &contact
	customer.UpdatedAt = now
	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	s.invalidateMetrics()
	s.persist(ctx)
	return &campaign, nil
}

// RemoveCampaign quita una campaña de un cliente. Si la campaña no existe la
// operación es un no-op; si el cliente no existe devuelve ErrNotFound.
func (s *Service) RemoveCampaign(ctx context.Context, customerID, campaignID string) error {
	customer, err := s.repo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	kept := customer.Campaigns[:0]
	removed := false
	for _, c := range customer.Campaigns {
		if c.ID == campaignID {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil
	}
	customer.Campaigns = kept
	customer.UpdatedAt = time.Now()
	if err := s.repo.Update(customer); err != nil {
		return err
	}
	s.invalidateMetrics()
	s.persist(ctx)
	return nil
}

// AddCustomersToCampaign inscribe un lote de clientes en una misma campaña
// (mismo ID de campaña para todos). Los clientes inexistentes y los que ya
// tienen una campaña activa del tipo se omiten sin error. Devuelve cuántos
// clientes quedaron inscritos en esta llamada.
func (s *Service) AddCustomersToCampaign(ctx context.Context, customerIDs []string, campaignType entity.CampaignType) (int, error) {
	if !entity.ValidCampaignType(campaignType) {
		return 0, domain.ErrInvalidInput
	}
	now := time.Now()
	campaignID := uuid.New().String()
	enrolled := 0
	for _, id := range customerIDs {
		customer, err := s.repo.GetByID(id)
		if err != nil {
			return enrolled, err
		}
		if customer == nil || customer.ActiveCampaignOfType(campaignType) != nil {
			continue
		}
		customer.Campaigns = append(customer.Campaigns, entity.Campaign{
			ID:            campaignID,
			Type:          campaignType,
			Status:        entity.CampaignScheduled,
			ScheduledDate: now.AddDate(0, 0, campaignLeadDays),
		})
		contact := now
		customer.LastContactDate = &contact
		customer.UpdatedAt = now
		if err := s.repo.Update(customer); err != nil {
			return enrolled, err
		}
		enrolled++
	}
	if enrolled > 0 {
		s.invalidateMetrics()
		s.persist(ctx)
	}
	return enrolled, nil
}

// CustomersByCampaign devuelve los clientes con al menos una campaña activa
// del tipo dado.
func (s *Service) CustomersByCampaign(campaignType entity.CampaignType) ([]*entity.Customer, error) {
	if !entity.ValidCampaignType(campaignType) {
		return nil, domain.ErrInvalidInput
	}
	customers, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Customer, 0)
	for _, c := range customers {
		if c.ActiveCampaignOfType(campaignType) != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// CampaignBuckets clasificación de la cartera para las campañas automáticas.
// Los filtros son independientes; un cliente puede caer en varias listas
// (uno recién creado sin fecha de servicio es a la vez nuevo e inactivo).
type CampaignBuckets struct {
	NewCustomers     []*entity.Customer `json:"new_customers"`
	CompletedService []*entity.Customer `json:"completed_service"`
	Inactive         []*entity.Customer `json:"inactive"`
}

// AutomaticCampaignBuckets clasifica los clientes según recencia:
// creados en los últimos 30 días son nuevos; con servicio en los últimos 30
// días, servicio completado; sin fecha de servicio o con más de 6 meses sin
// servicio, inactivos.
func (s *Service) AutomaticCampaignBuckets(now time.Time) (*CampaignBuckets, error) {
	customers, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	newCutoff := now.AddDate(0, 0, -newCustomerWindowDays)
	inactiveCutoff := now.AddDate(0, -inactiveAfterMonths, 0)

	buckets := &CampaignBuckets{}
	for _, c := range customers {
		if c.CreatedAt.After(newCutoff) {
			buckets.NewCustomers = append(buckets.NewCustomers, c)
		}
		if c.LastServiceDate != nil && c.LastServiceDate.After(newCutoff) {
			buckets.CompletedService = append(buckets.CompletedService, c)
		}
		if c.LastServiceDate == nil || !c.LastServiceDate.After(inactiveCutoff) {
			buckets.Inactive = append(buckets.Inactive, c)
		}
	}
	return buckets, nil
}

// RunAutomaticCampaigns programa campañas según los buckets de recencia:
// new_customer para los nuevos, reminder para los de servicio reciente y
// win_back para los inactivos. El lote es secuencial y aborta en el primer
// fallo; lo ya programado antes del fallo queda programado.
func (s *Service) RunAutomaticCampaigns(ctx context.Context) (int, error) {
	buckets, err := s.AutomaticCampaignBuckets(time.Now())
	if err != nil {
		return 0, err
	}
	scheduled := 0
	assign := func(customers []*entity.Customer, t entity.CampaignType) error {
		for _, c := range customers {
			if c.ActiveCampaignOfType(t) != nil {
				continue
			}
			if _, err := s.AddCampaign(ctx, c.ID, t); err != nil {
				return err
			}
			scheduled++
		}
		return nil
	}
	if err := assign(buckets.NewCustomers, entity.CampaignNewCustomer); err != nil {
		return scheduled, err
	}
	if err := assign(buckets.CompletedService, entity.CampaignReminder); err != nil {
		return scheduled, err
	}
	if err := assign(buckets.Inactive, entity.CampaignWinBack); err != nil {
		return scheduled, err
	}
	s.log.Info().Int("scheduled", scheduled).Msg("campañas automáticas ejecutadas")
	return scheduled, nil
}

// CampaignStatistics agrega las estadísticas de campañas de toda la cartera.
func (s *Service) CampaignStatistics() (*entity.CampaignStats, error) {
	customers, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	stats := ComputeCampaignStatistics(customers)
	return &stats, nil
}
