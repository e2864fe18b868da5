// Package crm implementa el motor de relación con clientes: repositorio de
// clientes con cuotas por plan, segmentación, métricas derivadas y campañas
// de marketing programadas.
package crm

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

// snapshotNamespace clave base del snapshot persistido de este store.
const snapshotNamespace = "customer-storage"

// Session es el contrato mínimo que necesita el servicio para conocer al
// usuario actual y su plan. Lo implementa *auth.SessionUseCase; el uso de
// interfaz evita el import circular.
type Session interface {
	CurrentUser() *entity.User
}

// SeedFunc genera los datos de ejemplo que se cargan para la cuenta de prueba.
type SeedFunc func(now time.Time) []*entity.Customer

// Service casos de uso de clientes. El snapshot de métricas se cachea y se
// invalida con cada mutación del repositorio; se recalcula bajo demanda.
type Service struct {
	repo      repository.CustomerRepository
	snapshots repository.SnapshotStore
	session   Session
	seed      SeedFunc
	log       *logger.Logger

	mu      sync.Mutex
	metrics *entity.CustomerMetrics
}

// NewService construye el servicio. seed puede ser nil si no hay cuenta de prueba.
func NewService(
	repo repository.CustomerRepository,
	snapshots repository.SnapshotStore,
	session Session,
	seed SeedFunc,
	log *logger.Logger,
) *Service {
	return &Service{repo: repo, snapshots: snapshots, session: session, seed: seed, log: log}
}

// InitializeForUser carga el estado del usuario: datos de ejemplo para la
// cuenta de prueba, snapshot persistido para el resto (vacío si no hay).
func (s *Service) InitializeForUser(ctx context.Context, userID string) error {
	if userID == entity.TestUserID && s.seed != nil {
		if err := s.repo.ReplaceAll(s.seed(time.Now())); err != nil {
			return err
		}
		s.invalidateMetrics()
		return nil
	}
	var customers []*entity.Customer
	found, err := s.snapshots.Load(ctx, snapshotNamespace+":"+userID, &customers)
	if err != nil {
		return err
	}
	if !found {
		customers = nil
	}
	if err := s.repo.ReplaceAll(customers); err != nil {
		return err
	}
	s.invalidateMetrics()
	return nil
}

// Reset vacía el estado en memoria (logout). El snapshot persistido se conserva.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.ReplaceAll(nil); err != nil {
		return err
	}
	s.invalidateMetrics()
	return nil
}

// Add crea un cliente. Falla con ErrUnauthorized sin sesión y con
// ErrQuotaExceeded si el plan no admite más clientes.
func (s *Service) Add(ctx context.Context, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	count, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	if !entity.WithinLimit(count, user.Limits().Customers) {
		return nil, domain.ErrQuotaExceeded
	}

	segment := entity.CustomerSegment(in.Segment)
	if segment == "" {
		segment = entity.SegmentNew
	}
	if !entity.ValidSegment(segment) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Phone:           in.Phone,
		Email:           in.Email,
		Address:         in.Address,
		City:            in.City,
		Zip:             in.Zip,
		Segment:         segment,
		LifetimeValue:   in.LifetimeValue,
		LastServiceDate: in.LastServiceDate,
		Campaigns:       []entity.Campaign{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(customer); err != nil {
		return nil, err
	}
	s.invalidateMetrics()
	s.persist(ctx)
	return customer, nil
}

// Update aplica una actualización parcial y refresca UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.City != nil {
		customer.City = *in.City
	}
	if in.Zip != nil {
		customer.Zip = *in.Zip
	}
	if in.Segment != nil {
		segment := entity.CustomerSegment(*in.Segment)
		if !entity.ValidSegment(segment) {
			return nil, domain.ErrInvalidInput
		}
		customer.Segment = segment
	}
	if in.LifetimeValue != nil {
		customer.LifetimeValue = *in.LifetimeValue
	}
	if in.LastServiceDate != nil {
		customer.LastServiceDate = in.LastServiceDate
	}
	customer.UpdatedAt = time.Now()
	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	s.invalidateMetrics()
	s.persist(ctx)
	return customer, nil
}

// Delete elimina un cliente de forma inmediata e irreversible (sin soft-delete).
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateMetrics()
	s.persist(ctx)
	return nil
}

// GetByID obtiene un cliente. ErrNotFound si no existe.
func (s *Service) GetByID(id string) (*entity.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// List devuelve todos los clientes en orden de inserción.
func (s *Service) List() ([]*entity.Customer, error) {
	return s.repo.All()
}

// Search busca por subcadena (sin mayúsculas/minúsculas) en
// nombre, teléfono, email, dirección, ciudad y código postal.
func (s *Service) Search(query string) ([]*entity.Customer, error) {
	customers, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []*entity.Customer
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(c.Phone, query) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.Address), q) ||
			strings.Contains(strings.ToLower(c.City), q) ||
			strings.Contains(c.Zip, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

// FilterBySegment clasificación pura por el tag almacenado: "all" devuelve
// todos; cualquier otro segmento filtra por coincidencia exacta.
func (s *Service) FilterBySegment(segment entity.CustomerSegment) ([]*entity.Customer, error) {
	customers, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	if segment == entity.SegmentAll {
		return customers, nil
	}
	if !entity.ValidSegment(segment) {
		return nil, domain.ErrInvalidInput
	}
	out := make([]*entity.Customer, 0)
	for _, c := range customers {
		if c.Segment == segment {
			out = append(out, c)
		}
	}
	return out, nil
}

// Count número de clientes del usuario actual.
func (s *Service) Count() (int, error) {
	return s.repo.Count()
}

// CanAdd indica si el plan del usuario actual admite un cliente más.
func (s *Service) CanAdd() bool {
	user := s.session.CurrentUser()
	if user == nil {
		return false
	}
	count, err := s.repo.Count()
	if err != nil {
		return false
	}
	return entity.WithinLimit(count, user.Limits().Customers)
}

// Metrics devuelve el snapshot de métricas, recalculándolo si quedó invalidado
// por una mutación.
func (s *Service) Metrics() (*entity.CustomerMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metrics != nil {
		m := *s.metrics
		return &m, nil
	}
	customers, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	m := ComputeMetrics(customers, time.Now())
	s.metrics = &m
	out := m
	return &out, nil
}

func (s *Service) invalidateMetrics() {
	s.mu.Lock()
	s.metrics = nil
	s.mu.Unlock()
}

// persist guarda el snapshot del store, solo si hay usuario en sesión.
// Un fallo de persistencia no aborta la operación: se registra y se sigue.
func (s *Service) persist(ctx context.Context) {
	user := s.session.CurrentUser()
	if user == nil {
		return
	}
	customers, err := s.repo.All()
	if err != nil {
		s.log.Warn().Err(err).Msg("snapshot de clientes: leer repositorio")
		return
	}
	key := snapshotNamespace + ":" + user.ID
	if err := s.snapshots.Save(ctx, key, customers); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("snapshot de clientes: guardar")
	}
}
