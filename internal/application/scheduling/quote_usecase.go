// Package scheduling gestiona cotizaciones y trabajos agendados, incluida la
// conversión cotización -> trabajo con su invariante de enlace uno a uno.
package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

const quoteSnapshotNamespace = "quote-storage"

// Session contrato mínimo de sesión que necesita el paquete.
type Session interface {
	CurrentUser() *entity.User
}

// QuoteSeedFunc genera cotizaciones de ejemplo para la cuenta de prueba.
type QuoteSeedFunc func(now time.Time) []*entity.Quote

// QuoteUseCase casos de uso de cotizaciones.
type QuoteUseCase struct {
	repo      repository.QuoteRepository
	snapshots repository.SnapshotStore
	session   Session
	seed      QuoteSeedFunc
	log       *logger.Logger
}

// NewQuoteUseCase construye el caso de uso. seed puede ser nil.
func NewQuoteUseCase(
	repo repository.QuoteRepository,
	snapshots repository.SnapshotStore,
	session Session,
	seed QuoteSeedFunc,
	log *logger.Logger,
) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, snapshots: snapshots, session: session, seed: seed, log: log}
}

// InitializeForUser carga el estado del usuario: datos de ejemplo para la
// cuenta de prueba, snapshot persistido para el resto.
func (uc *QuoteUseCase) InitializeForUser(ctx context.Context, userID string) error {
	if userID == entity.TestUserID && uc.seed != nil {
		return uc.repo.ReplaceAll(uc.seed(time.Now()))
	}
	var quotes []*entity.Quote
	found, err := uc.snapshots.Load(ctx, quoteSnapshotNamespace+":"+userID, &quotes)
	if err != nil {
		return err
	}
	if !found {
		quotes = nil
	}
	return uc.repo.ReplaceAll(quotes)
}

// Reset vacía el estado en memoria (logout).
func (uc *QuoteUseCase) Reset(ctx context.Context) error {
	return uc.repo.ReplaceAll(nil)
}

// Create crea una cotización en estado draft. El total se calcula a partir de
// las líneas; cada línea lleva su total cantidad x precio unitario.
func (uc *QuoteUseCase) Create(ctx context.Context, in dto.CreateQuoteRequest) (*entity.Quote, error) {
	user := uc.session.CurrentUser()
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	count, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	if !entity.WithinLimit(count, user.Limits().Quotes) {
		return nil, domain.ErrQuotaExceeded
	}

	items := make([]entity.QuoteItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items = append(items, entity.QuoteItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       lineTotal,
		})
		total = total.Add(lineTotal)
	}

	now := time.Now()
	quote := &entity.Quote{
		ID:              uuid.New().String(),
		CustomerID:      in.CustomerID,
		Title:           in.Title,
		Items:           items,
		Total:           total,
		Status:          entity.QuoteDraft,
		ScheduledDate:   in.ScheduledDate,
		ScheduledTime:   in.ScheduledTime,
		Notes:           in.Notes,
		CalendarEventID: in.CalendarEventID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(quote); err != nil {
		return nil, err
	}
	uc.persist(ctx)
	return quote, nil
}

// Update aplica una actualización parcial. El estado converted no es
// asignable por esta vía; solo lo produce la conversión a job.
func (uc *QuoteUseCase) Update(ctx context.Context, id string, in dto.UpdateQuoteRequest) (*entity.Quote, error) {
	quote, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.Status == entity.QuoteConverted {
		return nil, domain.ErrInvalidState
	}
	if in.Title != nil {
		quote.Title = *in.Title
	}
	if in.Status != nil {
		quote.Status = entity.QuoteStatus(*in.Status)
	}
	if in.ScheduledDate != nil {
		quote.ScheduledDate = *in.ScheduledDate
	}
	if in.ScheduledTime != nil {
		quote.ScheduledTime = *in.ScheduledTime
	}
	if in.Notes != nil {
		quote.Notes = *in.Notes
	}
	if in.CalendarEventID != nil {
		quote.CalendarEventID = *in.CalendarEventID
	}
	quote.UpdatedAt = time.Now()
	if err := uc.repo.Update(quote); err != nil {
		return nil, err
	}
	uc.persist(ctx)
	return quote, nil
}

// Delete elimina una cotización.
func (uc *QuoteUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.persist(ctx)
	return nil
}

// GetByID obtiene una cotización. ErrNotFound si no existe.
func (uc *QuoteUseCase) GetByID(id string) (*entity.Quote, error) {
	quote, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	return quote, nil
}

// List devuelve todas las cotizaciones en orden de inserción.
func (uc *QuoteUseCase) List() ([]*entity.Quote, error) {
	return uc.repo.All()
}

// ListByStatus filtra cotizaciones por estado.
func (uc *QuoteUseCase) ListByStatus(status entity.QuoteStatus) ([]*entity.Quote, error) {
	quotes, err := uc.repo.All()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Quote, 0)
	for _, q := range quotes {
		if q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

// ListByCustomer filtra cotizaciones por cliente.
func (uc *QuoteUseCase) ListByCustomer(customerID string) ([]*entity.Quote, error) {
	quotes, err := uc.repo.All()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Quote, 0)
	for _, q := range quotes {
		if q.CustomerID == customerID {
			out = append(out, q)
		}
	}
	return out, nil
}

// Count número de cotizaciones del usuario actual.
func (uc *QuoteUseCase) Count() (int, error) {
	return uc.repo.Count()
}

// CanAdd indica si el plan del usuario actual admite una cotización más.
func (uc *QuoteUseCase) CanAdd() bool {
	user := uc.session.CurrentUser()
	if user == nil {
		return false
	}
	count, err := uc.repo.Count()
	if err != nil {
		return false
	}
	return entity.WithinLimit(count, user.Limits().Quotes)
}

func (uc *QuoteUseCase) persist(ctx context.Context) {
	user := uc.session.CurrentUser()
	if user == nil {
		return
	}
	quotes, err := uc.repo.All()
	if err != nil {
		uc.log.Warn().Err(err).Msg("snapshot de cotizaciones: leer repositorio")
		return
	}
	key := quoteSnapshotNamespace + ":" + user.ID
	if err := uc.snapshots.Save(ctx, key, quotes); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("snapshot de cotizaciones: guardar")
	}
}
